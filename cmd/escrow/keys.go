package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/escrow-network/escrowd/internal/config"
	"github.com/escrow-network/escrowd/pkg/identity"
)

var keygen = cli.Command{
	Name:  "keygen",
	Usage: "generate a new identity key pair stored in the datadir",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "file name for the key, e.g. maker",
			Required: true,
		},
	},
	Action: keygenAction,
}

func keygenAction(ctx *cli.Context) error {
	keyPair, err := identity.NewKeyPair()
	if err != nil {
		return err
	}

	keysDir, err := config.GetKeysDir()
	if err != nil {
		return err
	}
	keyPath := filepath.Join(keysDir, ctx.String("name")+".key")
	if _, err := os.Stat(keyPath); err == nil {
		return fmt.Errorf("key file %s already exists", keyPath)
	}
	if err := os.WriteFile(keyPath, []byte(keyPair.Serialize()), 0600); err != nil {
		return err
	}

	printJSON(map[string]string{
		"address": keyPair.Address(),
		"key":     keyPath,
	})
	return nil
}

// getKeyPair loads the key pair named by the given CLI flag.
func getKeyPair(ctx *cli.Context, flag string) (*identity.KeyPair, error) {
	keysDir, err := config.GetKeysDir()
	if err != nil {
		return nil, err
	}
	keyPath := filepath.Join(keysDir, ctx.String(flag)+".key")
	buf, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading key %s: try 'keygen' first: %w", keyPath, err)
	}
	return identity.KeyPairFromHex(string(buf))
}
