// Command rustis-cli is a small operational CLI over the rustis
// client: key housekeeping (DEL, EXPIRE, SCAN, ...), database flushing
// and a latency benchmark.
//
// The server address comes from --addr, the RUSTIS_ADDR environment
// variable, or a .env file in the working directory.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/muenchow/rustis"
)

var (
	flagAddr    string
	flagTimeout time.Duration

	rootCmd = &cobra.Command{
		Use:           "rustis-cli",
		Short:         "command line client for RESP key-value stores",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() {
	// .env files are optional; flags win over the environment.
	_ = godotenv.Load(".env")

	defaultAddr := os.Getenv("RUSTIS_ADDR")
	if defaultAddr == "" {
		defaultAddr = "127.0.0.1:6379"
	}

	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", defaultAddr, "server address (host:port)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "per-command timeout")

	rootCmd.AddCommand(
		newDelCmd(),
		newUnlinkCmd(),
		newExistsCmd(),
		newTTLCmd(),
		newPTTLCmd(),
		newTypeCmd(),
		newKeysCmd(),
		newRenameCmd(),
		newCopyCmd(),
		newExpireCmd(),
		newPersistCmd(),
		newScanCmd(),
		newRandomKeyCmd(),
		newFlushDBCmd(),
		newBenchCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withClient runs fn with a connected command surface and a bounded
// context, closing the client afterwards.
func withClient(fn func(ctx context.Context, db *rustis.Commands) error) error {
	client, err := rustis.NewClient(rustis.Config{Addrs: []string{flagAddr}})
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	return fn(ctx, rustis.NewCommands(client))
}

func newDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del [key]...",
		Short: "Remove keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				n, err := db.Del(ctx, args...)
				if err != nil {
					return err
				}
				fmt.Println(n)
				return nil
			})
		},
	}
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink [key]...",
		Short: "Remove keys, reclaiming memory asynchronously",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				n, err := db.Unlink(ctx, args...)
				if err != nil {
					return err
				}
				fmt.Println(n)
				return nil
			})
		},
	}
}

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists [key]...",
		Short: "Count how many of the given keys exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				n, err := db.Exists(ctx, args...)
				if err != nil {
					return err
				}
				fmt.Println(n)
				return nil
			})
		},
	}
}

func newTTLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ttl [key]",
		Short: "Remaining time to live in seconds (-1 no expiry, -2 missing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				n, err := db.TTL(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Println(n)
				return nil
			})
		},
	}
}

func newPTTLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pttl [key]",
		Short: "Remaining time to live in milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				n, err := db.PTTL(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Println(n)
				return nil
			})
		},
	}
}

func newTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type [key]",
		Short: "Type of the value stored at key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				t, err := db.Type(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Println(t)
				return nil
			})
		},
	}
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [pattern]",
		Short: "List keys matching a glob pattern (prefer scan on large databases)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				keys, err := db.Keys(ctx, args[0])
				if err != nil {
					return err
				}
				for _, key := range keys {
					fmt.Println(key)
				}
				return nil
			})
		},
	}
}

func newRenameCmd() *cobra.Command {
	var nx bool
	cmd := &cobra.Command{
		Use:   "rename [key] [newkey]",
		Short: "Rename a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				if nx {
					renamed, err := db.RenameNX(ctx, args[0], args[1])
					if err != nil {
						return err
					}
					fmt.Println(renamed)
					return nil
				}
				if err := db.Rename(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("OK")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&nx, "nx", false, "only rename when the new key does not exist")
	return cmd
}

func newCopyCmd() *cobra.Command {
	var destDB int
	var replace bool
	cmd := &cobra.Command{
		Use:   "copy [source] [destination]",
		Short: "Copy the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				copyCmd := db.Copy(args[0], args[1])
				if cmd.Flags().Changed("db") {
					copyCmd = copyCmd.DB(destDB)
				}
				if replace {
					copyCmd = copyCmd.Replace()
				}
				copied, err := copyCmd.Execute(ctx)
				if err != nil {
					return err
				}
				fmt.Println(copied)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&destDB, "db", 0, "destination logical database")
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite the destination key")
	return cmd
}

func newExpireCmd() *cobra.Command {
	var nx, xx, gt, lt bool
	cmd := &cobra.Command{
		Use:   "expire [key] [seconds]",
		Short: "Set a timeout on a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("seconds must be an integer: %w", err)
			}
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				expireCmd := db.Expire(args[0], seconds)
				var set bool
				switch {
				case nx:
					set, err = expireCmd.NX(ctx)
				case xx:
					set, err = expireCmd.XX(ctx)
				case gt:
					set, err = expireCmd.GT(ctx)
				case lt:
					set, err = expireCmd.LT(ctx)
				default:
					set, err = expireCmd.Execute(ctx)
				}
				if err != nil {
					return err
				}
				fmt.Println(set)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&nx, "nx", false, "only when the key has no expiry")
	cmd.Flags().BoolVar(&xx, "xx", false, "only when the key has an expiry")
	cmd.Flags().BoolVar(&gt, "gt", false, "only when greater than the current expiry")
	cmd.Flags().BoolVar(&lt, "lt", false, "only when less than the current expiry")
	cmd.MarkFlagsMutuallyExclusive("nx", "xx", "gt", "lt")
	return cmd
}

func newPersistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "persist [key]",
		Short: "Remove the timeout on a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				removed, err := db.Persist(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Println(removed)
				return nil
			})
		},
	}
}

func newScanCmd() *cobra.Command {
	var match, typeName string
	var count int64
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Walk the whole key space incrementally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				var cursor uint64
				for {
					scanCmd := db.Scan(cursor)
					if match != "" {
						scanCmd = scanCmd.Match(match)
					}
					if count > 0 {
						scanCmd = scanCmd.Count(count)
					}
					if typeName != "" {
						scanCmd = scanCmd.Type(typeName)
					}
					page, err := scanCmd.Execute(ctx)
					if err != nil {
						return err
					}
					for _, key := range page.Keys {
						fmt.Println(key)
					}
					if page.Cursor == 0 {
						return nil
					}
					cursor = page.Cursor
				}
			})
		},
	}
	cmd.Flags().StringVar(&match, "match", "", "glob pattern filter")
	cmd.Flags().Int64Var(&count, "count", 0, "batch size hint")
	cmd.Flags().StringVar(&typeName, "type", "", "only keys holding this type")
	return cmd
}

func newRandomKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "randomkey",
		Short: "Return a random key, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				key, err := db.RandomKey(ctx)
				if err != nil {
					return err
				}
				if key == nil {
					fmt.Println("(empty database)")
					return nil
				}
				fmt.Println(*key)
				return nil
			})
		},
	}
}

func newFlushDBCmd() *cobra.Command {
	var async, sync, all bool
	cmd := &cobra.Command{
		Use:   "flushdb",
		Short: "Delete all keys of the selected database (--all for every database)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := rustis.FlushDefault
			if async {
				mode = rustis.FlushAsync
			}
			if sync {
				mode = rustis.FlushSync
			}
			return withClient(func(ctx context.Context, db *rustis.Commands) error {
				var err error
				if all {
					err = db.FlushAll(ctx, mode)
				} else {
					err = db.FlushDB(ctx, mode)
				}
				if err != nil {
					return err
				}
				fmt.Println("OK")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&async, "async", false, "flush asynchronously")
	cmd.Flags().BoolVar(&sync, "sync", false, "flush synchronously")
	cmd.Flags().BoolVar(&all, "all", false, "flush every database, not just the selected one")
	cmd.MarkFlagsMutuallyExclusive("async", "sync")
	return cmd
}
