package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/pkg/pda"
)

var offer = cli.Command{
	Name:  "offer",
	Usage: "create, settle and inspect escrow offers",
	Subcommands: []*cli.Command{
		{
			Name:  "make",
			Usage: "lock token A into a vault and publish an offer",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "maker",
					Usage:    "key name of the maker",
					Required: true,
				},
				&cli.Uint64Flag{Name: "id", Required: true},
				&cli.StringFlag{Name: "mint-a", Required: true},
				&cli.StringFlag{Name: "mint-b", Required: true},
				&cli.Uint64Flag{Name: "offered", Required: true},
				&cli.Uint64Flag{Name: "wanted", Required: true},
			},
			Action: makeOfferAction,
		},
		{
			Name:  "take",
			Usage: "settle an open offer atomically",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "taker",
					Usage:    "key name of the taker",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "address",
					Usage:    "custody address of the offer",
					Required: true,
				},
			},
			Action: takeOfferAction,
		},
		{
			Name:   "list",
			Usage:  "list all open offers",
			Action: listOffersAction,
		},
		{
			Name:  "show",
			Usage: "show an open offer and its vault balance",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "address", Required: true},
			},
			Action: showOfferAction,
		},
	},
}

var settlements = cli.Command{
	Name:   "settlements",
	Usage:  "list settlement receipts",
	Action: listSettlementsAction,
}

func makeOfferAction(ctx *cli.Context) error {
	keyPair, err := getKeyPair(ctx, "maker")
	if err != nil {
		return err
	}

	svc, _, cleanup, err := getService()
	if err != nil {
		return err
	}
	defer cleanup()

	maker := keyPair.Address()
	makerTokenAAccount, err := pda.HoldingAddress(ctx.String("mint-a"), maker)
	if err != nil {
		return err
	}
	nonce, err := svc.GetNonce(context.Background(), maker)
	if err != nil {
		return err
	}

	params := application.MakeOfferParams{
		Id:                  ctx.Uint64("id"),
		Maker:               maker,
		TokenMintA:          ctx.String("mint-a"),
		TokenMintB:          ctx.String("mint-b"),
		TokenAOfferedAmount: ctx.Uint64("offered"),
		TokenBWantedAmount:  ctx.Uint64("wanted"),
		MakerTokenAAccount:  makerTokenAAccount,
		Nonce:               nonce,
	}
	if params.Signature, err = keyPair.Sign(params.Digest()); err != nil {
		return err
	}

	info, err := svc.MakeOffer(context.Background(), params)
	if err != nil {
		return err
	}

	printJSON(info)
	return nil
}

func takeOfferAction(ctx *cli.Context) error {
	keyPair, err := getKeyPair(ctx, "taker")
	if err != nil {
		return err
	}

	svc, _, cleanup, err := getService()
	if err != nil {
		return err
	}
	defer cleanup()

	nonce, err := svc.GetNonce(context.Background(), keyPair.Address())
	if err != nil {
		return err
	}
	params := application.TakeOfferParams{
		Taker:          keyPair.Address(),
		CustodyAddress: ctx.String("address"),
		Nonce:          nonce,
	}
	if params.Signature, err = keyPair.Sign(params.Digest()); err != nil {
		return err
	}

	info, err := svc.TakeOffer(context.Background(), params)
	if err != nil {
		return err
	}

	printJSON(info)
	return nil
}

func listOffersAction(ctx *cli.Context) error {
	svc, _, cleanup, err := getService()
	if err != nil {
		return err
	}
	defer cleanup()

	offers, err := svc.ListOffers(context.Background())
	if err != nil {
		return err
	}

	printJSON(offers)
	return nil
}

func showOfferAction(ctx *cli.Context) error {
	svc, _, cleanup, err := getService()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := svc.GetOffer(context.Background(), ctx.String("address"))
	if err != nil {
		return err
	}

	printJSON(info)
	return nil
}

func listSettlementsAction(ctx *cli.Context) error {
	svc, _, cleanup, err := getService()
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := svc.ListSettlements(context.Background())
	if err != nil {
		return err
	}

	printJSON(list)
	return nil
}
