package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs"
)

func newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [spec]...",
		Short: "Run several operations sequentially as one task",
		Long: `batch accumulates operations and submits them as a single batch
task with first-failure-aborts semantics. Each spec is an operation name
and its colon-separated path arguments:

  exists:PATH  info:PATH   ls:PATH      mkdir:PATH  rm:PATH
  size:PATH    mtime:PATH  cp:SRC:DST   mv:SRC:DST`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := asyncfs.NewBuilder().WithTimeout(taskTimeout())
			for _, spec := range args {
				if err := addSpec(builder, spec); err != nil {
					return err
				}
			}

			m, err := newManager()
			if err != nil {
				return err
			}
			defer m.Close()

			handle, err := builder.BuildBatch(m)
			if err != nil {
				return err
			}

			res := handle.Wait()
			values, ok := res.Values()
			if !ok {
				return fail("batch", res)
			}
			for i, value := range values {
				fmt.Printf("%d. %s: %v\n", i+1, args[i], value)
			}
			return nil
		},
	}
	return cmd
}

// addSpec parses one NAME:ARG[:ARG] spec and queues it on the builder.
func addSpec(b *asyncfs.Builder, spec string) error {
	parts := strings.Split(spec, ":")
	name := parts[0]
	paths := parts[1:]

	one := func() (string, error) {
		if len(paths) != 1 {
			return "", fmt.Errorf("operation %q takes one path, got %d in %q", name, len(paths), spec)
		}
		return paths[0], nil
	}
	two := func() (string, string, error) {
		if len(paths) != 2 {
			return "", "", fmt.Errorf("operation %q takes two paths, got %d in %q", name, len(paths), spec)
		}
		return paths[0], paths[1], nil
	}

	switch name {
	case "exists":
		p, err := one()
		if err != nil {
			return err
		}
		b.PathExists(p)
	case "info":
		p, err := one()
		if err != nil {
			return err
		}
		b.GetFileInfo(p)
	case "ls":
		p, err := one()
		if err != nil {
			return err
		}
		b.ReadDirectory(p)
	case "mkdir":
		p, err := one()
		if err != nil {
			return err
		}
		b.CreateDirectory(p)
	case "rm":
		p, err := one()
		if err != nil {
			return err
		}
		b.Delete(p)
	case "size":
		p, err := one()
		if err != nil {
			return err
		}
		b.GetFileSize(p)
	case "mtime":
		p, err := one()
		if err != nil {
			return err
		}
		b.GetModifiedTime(p)
	case "cp":
		src, dst, err := two()
		if err != nil {
			return err
		}
		b.Copy(src, dst)
	case "mv":
		src, dst, err := two()
		if err != nil {
			return err
		}
		b.Move(src, dst)
	default:
		return fmt.Errorf("unknown operation %q in %q", name, spec)
	}
	return nil
}
