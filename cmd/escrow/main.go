package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/escrow-network/escrowd/internal/config"
	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/internal/infrastructure/ledger"
	dbbadger "github.com/escrow-network/escrowd/internal/infrastructure/storage/db/badger"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "escrow CLI"
	app.Usage = "command line interface for the escrowd two-party token escrow"
	app.Commands = append(
		app.Commands,
		&keygen,
		&mint,
		&airdrop,
		&offer,
		&settlements,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// getService opens the store under the configured datadir and wires the
// escrow service on top of it. The returned cleanup closes the store.
func getService() (*application.Service, ports.RepoManager, func(), error) {
	dbDir, err := config.GetDbDir()
	if err != nil {
		return nil, nil, nil, err
	}

	repoManager, err := dbbadger.NewRepoManager(dbDir, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	ledgerSvc, err := ledger.NewService(repoManager)
	if err != nil {
		repoManager.Close()
		return nil, nil, nil, err
	}
	svc, err := application.NewService(repoManager, ledgerSvc)
	if err != nil {
		repoManager.Close()
		return nil, nil, nil, err
	}

	return svc, repoManager, func() { repoManager.Close() }, nil
}

// getLedger gives direct access to the token-ledger collaborator for the
// bootstrap commands (minting, funding) that live outside the escrow core.
func getLedger() (ports.Ledger, ports.RepoManager, func(), error) {
	dbDir, err := config.GetDbDir()
	if err != nil {
		return nil, nil, nil, err
	}

	repoManager, err := dbbadger.NewRepoManager(dbDir, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	ledgerSvc, err := ledger.NewService(repoManager)
	if err != nil {
		repoManager.Close()
		return nil, nil, nil, err
	}
	return ledgerSvc, repoManager, func() { repoManager.Close() }, nil
}

func printJSON(v interface{}) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(buf))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[escrow] %v\n", err)
	os.Exit(1)
}
