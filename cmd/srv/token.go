package main

import (
	"errors"
	"fmt"

	"github.com/go4it-sports/starpath/internal/model"
	"github.com/urfave/cli/v2"
)

// generateToken prints an access token, for local testing of the apis.
func (s *srv) generateToken(cctx *cli.Context) error {
	userID := cctx.Args().First()
	if userID == "" {
		return errors.New("missing user id")
	}

	s.loadTokenEngine()
	token, err := s.tokenEngine.Generate(userID, model.AccessToken{ID: userID})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
