package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs"
	"github.com/arthur-debert/asyncfs/pkg/asyncfs/state"
)

// runEach submits one operation per path and waits for all of them
// concurrently, printing each outcome through report. The command fails
// if any task does not succeed.
func runEach(paths []string, build func(path string) asyncfs.Operation, report func(path string, res asyncfs.Result) error) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	defer m.Close()

	machine := state.New()
	if err := machine.Handle(state.InitializationComplete); err != nil {
		return err
	}
	if err := machine.Handle(state.StartLoading); err != nil {
		return err
	}

	results := make([]asyncfs.Result, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		handle, err := m.Submit(build(path), taskTimeout())
		if err != nil {
			return err
		}
		i := i
		g.Go(func() error {
			results[i] = handle.Wait()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var firstErr error
	for i, path := range paths {
		if err := report(path, results[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		machine.Fail(firstErr.Error())
		logger.Debug().Str("state", string(machine.Current())).Msg("finished with error state")
		return firstErr
	}
	return machine.Handle(state.FinishLoading)
}

// fail reports a non-success result as an error naming the path.
func fail(path string, res asyncfs.Result) error {
	switch res.Status {
	case asyncfs.StatusError:
		return fmt.Errorf("%s: %s", path, res.Err)
	case asyncfs.StatusTimeout:
		return fmt.Errorf("%s: operation timed out", path)
	case asyncfs.StatusCancelled:
		return fmt.Errorf("%s: operation was cancelled", path)
	}
	return nil
}

func newExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists [path]...",
		Short: "Check whether paths exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEach(args, asyncfs.PathExists, func(path string, res asyncfs.Result) error {
				if !res.IsSuccess() {
					return fail(path, res)
				}
				fmt.Printf("%s: %v\n", path, res.Bool())
				return nil
			})
		},
	}
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [path]...",
		Short: "Print metadata snapshots for paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEach(args, asyncfs.GetFileInfo, func(path string, res asyncfs.Result) error {
				info, ok := res.FileInfo()
				if !ok {
					return fail(path, res)
				}
				kind := "file"
				if info.IsDirectory {
					kind = "directory"
				}
				fmt.Printf("%s: %s, %d bytes, modified %s\n", info.Path, kind, info.Size, info.Modified.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory's immediate children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEach(args, asyncfs.ReadDirectory, func(path string, res asyncfs.Result) error {
				infos, ok := res.FileInfos()
				if !ok {
					return fail(path, res)
				}
				sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
				for _, info := range infos {
					marker := ""
					if info.IsDirectory {
						marker = "/"
					}
					fmt.Printf("%s%s\t%d\n", info.Name, marker, info.Size)
				}
				return nil
			})
		},
	}
}

func newSizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "size [path]...",
		Short: "Print file sizes in bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEach(args, asyncfs.GetFileSize, func(path string, res asyncfs.Result) error {
				if !res.IsSuccess() {
					return fail(path, res)
				}
				fmt.Printf("%s: %d\n", path, res.Uint64())
				return nil
			})
		},
	}
}

func newModTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mtime [path]...",
		Short: "Print modification times as Unix timestamps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEach(args, asyncfs.GetModifiedTime, func(path string, res asyncfs.Result) error {
				if !res.IsSuccess() {
					return fail(path, res)
				}
				fmt.Printf("%s: %d\n", path, res.Uint64())
				return nil
			})
		},
	}
}

func newMkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir [path]...",
		Short: "Create directories, including missing parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEach(args, asyncfs.CreateDirectory, func(path string, res asyncfs.Result) error {
				if !res.IsSuccess() {
					return fail(path, res)
				}
				fmt.Printf("created %s\n", path)
				return nil
			})
		},
	}
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [path]...",
		Short: "Delete files or directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEach(args, asyncfs.Delete, func(path string, res asyncfs.Result) error {
				if !res.IsSuccess() {
					return fail(path, res)
				}
				fmt.Printf("deleted %s\n", path)
				return nil
			})
		},
	}
}

func newCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cp [source] [destination]",
		Short: "Copy a file or directory tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			return runEach([]string{src}, func(string) asyncfs.Operation {
				return asyncfs.Copy(src, dst)
			}, func(path string, res asyncfs.Result) error {
				if !res.IsSuccess() {
					return fail(path, res)
				}
				fmt.Printf("copied %s to %s\n", src, dst)
				return nil
			})
		},
	}
}

func newMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mv [source] [destination]",
		Short: "Move (rename) a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			return runEach([]string{src}, func(string) asyncfs.Operation {
				return asyncfs.Move(src, dst)
			}, func(path string, res asyncfs.Result) error {
				if !res.IsSuccess() {
					return fail(path, res)
				}
				fmt.Printf("moved %s to %s\n", src, dst)
				return nil
			})
		},
	}
}
