// historyctl is a maintenance tool that deletes URL-check history records
// by id, outside of the request path.
//
// Usage: historyctl -d <dsn> id [id ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/history"
)

func main() {
	dsn := flag.String("d", os.Getenv("DATABASE_DSN"), "PostgreSQL DSN")
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "database DSN is required (-d or DATABASE_DSN)")
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "no record ids given")
		os.Exit(1)
	}

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid id %q\n", arg)
			os.Exit(1)
		}
		ids = append(ids, id)
	}

	logger := zap.NewNop()

	store, err := history.NewPostgres(*dsn, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := store.DeleteByIDs(ctx, ids)
	if err != nil {
		fmt.Fprintf(os.Stderr, "delete: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d of %d records\n", deleted, len(ids))
}
