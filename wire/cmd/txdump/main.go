package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tokenized/config"
	"github.com/tokenized/logger"
	"github.com/tokenized/txwire/txstore"
	"github.com/tokenized/txwire/wire"
)

type Config struct {
	Bucket string `default:"standalone" envconfig:"STORAGE_BUCKET" json:"bucket"`
	Root   string `default:"./txdata" envconfig:"STORAGE_ROOT" json:"root"`
}

func main() {
	ctx := logger.ContextWithLogger(context.Background(), true, false, "")

	cfg := &Config{}
	if err := config.LoadConfig(ctx, cfg); err != nil {
		logger.Fatal(ctx, "Failed to load config : %s", err)
	}

	if len(os.Args) < 2 {
		logger.Fatal(ctx, "Not enough arguments. Need command (decode, store, fetch)")
	}

	switch os.Args[1] {
	case "decode":
		Decode(ctx, os.Args[2:])
	case "store":
		StoreTx(ctx, cfg, os.Args[2:])
	case "fetch":
		FetchTx(ctx, cfg, os.Args[2:])
	default:
		logger.Fatal(ctx, "Unknown command : %s", os.Args[1])
	}
}

// Decode prints the human readable view of a hex encoded transaction.
// Parameters: <Tx Hex>
func Decode(ctx context.Context, args []string) {
	if len(args) != 1 {
		logger.Fatal(ctx, "Wrong argument count: decode <Tx Hex>")
	}

	tx := &wire.MsgTx{}
	if err := tx.UnmarshalText([]byte(args[0])); err != nil {
		logger.Fatal(ctx, "Failed to decode tx : %s", err)
	}

	fmt.Print(tx.String())
}

// StoreTx saves a hex encoded transaction under an id.
// Parameters: <TxId Hex> <Tx Hex>
func StoreTx(ctx context.Context, cfg *Config, args []string) {
	if len(args) != 2 {
		logger.Fatal(ctx, "Wrong argument count: store <TxId Hex> <Tx Hex>")
	}

	id, err := wire.NewTxIdFromStr(args[0])
	if err != nil {
		logger.Fatal(ctx, "Failed to parse tx id : %s", err)
	}

	tx := &wire.MsgTx{}
	if err := tx.UnmarshalText([]byte(args[1])); err != nil {
		logger.Fatal(ctx, "Failed to decode tx : %s", err)
	}

	storage, err := txstore.NewStorage(txstore.NewConfig(cfg.Bucket, cfg.Root))
	if err != nil {
		logger.Fatal(ctx, "Failed to create storage : %s", err)
	}

	store := txstore.NewStore(storage)
	if err := store.Save(ctx, *id, tx); err != nil {
		logger.Fatal(ctx, "Failed to save tx : %s", err)
	}

	logger.Info(ctx, "Saved tx %s (%d bytes)", id, tx.SerializeSize())
}

// FetchTx loads a stored transaction and prints the human readable view.
// Parameters: <TxId Hex>
func FetchTx(ctx context.Context, cfg *Config, args []string) {
	if len(args) != 1 {
		logger.Fatal(ctx, "Wrong argument count: fetch <TxId Hex>")
	}

	id, err := wire.NewTxIdFromStr(args[0])
	if err != nil {
		logger.Fatal(ctx, "Failed to parse tx id : %s", err)
	}

	storage, err := txstore.NewStorage(txstore.NewConfig(cfg.Bucket, cfg.Root))
	if err != nil {
		logger.Fatal(ctx, "Failed to create storage : %s", err)
	}

	store := txstore.NewStore(storage)
	tx, err := store.Load(ctx, *id)
	if err != nil {
		logger.Fatal(ctx, "Failed to load tx : %s", err)
	}

	fmt.Print(tx.String())
}
