// Command bdsm operates on a single-file block-structured filesystem
// image: build one, check its integrity, inspect or mutate its
// directory tree, and move files in and out of it.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/irinakurteva99/bdsm-go/backup"
	"github.com/irinakurteva99/bdsm-go/hostmeta"
	"github.com/irinakurteva99/bdsm-go/image"
)

var (
	log     = logrus.New()
	verbose bool
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a returned error to its stable process exit code. A
// bare usage/arity error from cobra itself (no *image.Error behind it)
// exits 1.
func exitCodeFor(err error) int {
	var ie *image.Error
	if errors.As(err, &ie) {
		return ie.ExitCode()
	}
	return 1
}

func backingFile() (string, error) {
	path := os.Getenv("BDSM_FS")
	if path == "" {
		return "", &image.Error{
			Kind: image.KindIOOpen,
			Code: 2,
			Op:   "open",
			Err:  errors.New("BDSM_FS is not set"),
		}
	}
	return path, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bdsm",
		Short: "inspect and mutate a block-structured filesystem image",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	root.AddCommand(
		newMkfsCmd(),
		newFsckCmd(),
		newDebugCmd(),
		newLsdirCmd(),
		newLsobjCmd(),
		newStatCmd(),
		newMkdirCmd(),
		newRmdirCmd(),
		newCpfileCmd(),
		newSnapshotCmd(),
		newRestoreCmd(),
	)
	return root
}

// mutating names the subcommands that change the backing file or a host
// file; these get an Info-level success line, read-only commands only log
// at debug level.
var mutating = map[string]bool{
	"mkfs":     true,
	"mkdir":    true,
	"rmdir":    true,
	"cpfile":   true,
	"snapshot": true,
	"restore":  true,
}

// withCorrelation wraps a command's RunE so every invocation logs with a
// single uuid run id, the operation name, and the backing-file path.
func withCorrelation(name string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		entry := log.WithFields(logrus.Fields{
			"run_id": uuid.New(),
			"op":     name,
			"fs":     os.Getenv("BDSM_FS"),
		})
		entry.Debug("starting")
		if err := fn(cmd, args); err != nil {
			entry.WithError(err).Error("failed")
			return err
		}
		if mutating[name] {
			entry.Info("done")
		} else {
			entry.Debug("done")
		}
		return nil
	}
}

func newMkfsCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "mkfs",
		Args: cobra.NoArgs,
		RunE: withCorrelation("mkfs", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			return image.Mkfs(path)
		}),
	}
}

func newFsckCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "fsck",
		Args: cobra.NoArgs,
		RunE: withCorrelation("fsck", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			return image.Fsck(path)
		}),
	}
}

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "debug",
		Args: cobra.NoArgs,
		RunE: withCorrelation("debug", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			out, err := image.Debug(path)
			if err != nil {
				return err
			}
			return writeStdout(out)
		}),
	}
}

func newLsdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "lsdir PATH",
		Args: cobra.ExactArgs(1),
		RunE: withCorrelation("lsdir", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			entries, err := image.Lsdir(path, args[0])
			if err != nil {
				return err
			}
			return writeStdout(formatEntries(entries))
		}),
	}
}

func newLsobjCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "lsobj PATH",
		Args: cobra.ExactArgs(1),
		RunE: withCorrelation("lsobj", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			e, err := image.Lsobj(path, args[0])
			if err != nil {
				return err
			}
			return writeStdout(formatEntry(e) + " " + e.Name + "\n")
		}),
	}
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "stat PATH",
		Args: cobra.ExactArgs(1),
		RunE: withCorrelation("stat", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			e, err := image.Stat(path, args[0])
			if err != nil {
				return err
			}
			return writeStdout(hostmeta.StatBlock(e.Name, e.IsDir(), e.Size, e.ID, e.UID, e.GID, e.Permissions, e.ModTime, e.VolumeUUID))
		}),
	}
}

func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "mkdir PATH",
		Args: cobra.ExactArgs(1),
		RunE: withCorrelation("mkdir", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			return image.Mkdir(path, args[0])
		}),
	}
}

func newRmdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "rmdir PATH",
		Args: cobra.ExactArgs(1),
		RunE: withCorrelation("rmdir", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			return image.Rmdir(path, args[0])
		}),
	}
}

func newCpfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "cpfile SRC DST",
		Args: cobra.ExactArgs(2),
		RunE: withCorrelation("cpfile", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			src, dst := args[0], args[1]
			if len(dst) > 0 && dst[0] == '+' {
				if verbose {
					if ts, err := hostmeta.AccessTime(src); err == nil {
						log.WithField("atime", ts.AccessTime()).Debugf("host source %s", src)
					}
				}
				return image.CpfileIn(path, src, dst)
			}
			return image.CpfileOut(path, src, dst)
		}),
	}
}

func newSnapshotCmd() *cobra.Command {
	var useXZ bool
	cmd := &cobra.Command{
		Use:  "snapshot OUT",
		Args: cobra.ExactArgs(1),
		RunE: withCorrelation("snapshot", func(cmd *cobra.Command, args []string) error {
			path, err := backingFile()
			if err != nil {
				return err
			}
			codec := backup.CodecLZ4
			if useXZ {
				codec = backup.CodecXZ
			}
			id, err := backup.Snapshot(path, args[0], codec)
			if err != nil {
				return err
			}
			return writeStdout(fmt.Sprintf("snapshot %s written (%s)\n", id, codec))
		}),
	}
	cmd.Flags().BoolVar(&useXZ, "xz", false, "use xz instead of lz4 compression")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "restore IN OUT",
		Args: cobra.ExactArgs(2),
		RunE: withCorrelation("restore", func(cmd *cobra.Command, args []string) error {
			id, err := backup.Restore(args[0], args[1])
			if err != nil {
				return err
			}
			return writeStdout(fmt.Sprintf("restored snapshot %s\n", id))
		}),
	}
}

// writeStdout writes s to stdout, translating any write failure into
// the stable exit code 3.
func writeStdout(s string) error {
	if _, err := fmt.Fprint(os.Stdout, s); err != nil {
		return &image.Error{Kind: image.KindIOWrite, Code: 3, Op: "stdout", Err: err}
	}
	return nil
}

func formatEntries(entries []image.Entry) string {
	out := ""
	for _, e := range entries {
		out += formatEntry(e) + " " + e.Name + "\n"
	}
	return out
}

func formatEntry(e image.Entry) string {
	return hostmeta.ModeLine(e.IsDir(), e.Permissions, e.UID, e.GID, e.Size, e.ModTime)
}
