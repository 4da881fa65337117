package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var mint = cli.Command{
	Name:  "mint",
	Usage: "create asset mints and issue units (bootstrap helpers)",
	Subcommands: []*cli.Command{
		{
			Name:  "new",
			Usage: "register a new asset mint",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "authority",
					Usage:    "key name of the mint authority",
					Required: true,
				},
				&cli.UintFlag{
					Name:  "decimals",
					Usage: "decimals of the asset base unit",
					Value: 8,
				},
			},
			Action: mintNewAction,
		},
		{
			Name:  "to",
			Usage: "issue units of an asset to an owner's holding account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "authority",
					Usage:    "key name of the mint authority",
					Required: true,
				},
				&cli.StringFlag{Name: "asset", Required: true},
				&cli.StringFlag{
					Name:     "owner",
					Usage:    "address receiving the issued units",
					Required: true,
				},
				&cli.Uint64Flag{Name: "amount", Required: true},
			},
			Action: mintToAction,
		},
	},
}

var airdrop = cli.Command{
	Name:  "airdrop",
	Usage: "fund an address with native units for storage rent (dev only)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "address", Required: true},
		&cli.Uint64Flag{Name: "amount", Required: true},
	},
	Action: airdropAction,
}

func mintNewAction(ctx *cli.Context) error {
	keyPair, err := getKeyPair(ctx, "authority")
	if err != nil {
		return err
	}

	ledgerSvc, repoManager, cleanup, err := getLedger()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := repoManager.RunTransaction(
		context.Background(), false,
		func(txCtx context.Context) (interface{}, error) {
			return ledgerSvc.CreateMint(
				txCtx, keyPair.Address(), uint8(ctx.Uint("decimals")),
			)
		},
	)
	if err != nil {
		return err
	}

	printJSON(map[string]string{"asset": res.(string)})
	return nil
}

func mintToAction(ctx *cli.Context) error {
	keyPair, err := getKeyPair(ctx, "authority")
	if err != nil {
		return err
	}

	ledgerSvc, repoManager, cleanup, err := getLedger()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := repoManager.RunTransaction(
		context.Background(), false,
		func(txCtx context.Context) (interface{}, error) {
			return ledgerSvc.MintTo(
				txCtx, ctx.String("asset"), ctx.String("owner"),
				ctx.Uint64("amount"), keyPair.Address(),
			)
		},
	)
	if err != nil {
		return err
	}

	printJSON(map[string]string{"holding_account": res.(string)})
	return nil
}

func airdropAction(ctx *cli.Context) error {
	ledgerSvc, repoManager, cleanup, err := getLedger()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := repoManager.RunTransaction(
		context.Background(), false,
		func(txCtx context.Context) (interface{}, error) {
			return nil, ledgerSvc.Airdrop(
				txCtx, ctx.String("address"), ctx.Uint64("amount"),
			)
		},
	); err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"address": ctx.String("address"),
		"amount":  ctx.Uint64("amount"),
	})
	return nil
}
