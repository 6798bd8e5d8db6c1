package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azfile"
	"github.com/c2fo/azfs/frame"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/options/delete"
	"github.com/c2fo/azfs/options/list"
	"github.com/c2fo/azfs/options/read"
)

func (a *app) println(lines ...string) {
	for _, l := range lines {
		_, _ = fmt.Fprintln(a.stdout, l)
	}
}

func listOptions(full bool) []options.ListOption {
	if full {
		return []options.ListOption{list.WithAttachPrefix()}
	}
	return nil
}

func (a *app) lsCommand() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "ls URL",
		Short: "List the children of a container, directory or queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			names, err := c.Ls(cmd.Context(), args[0], listOptions(full)...)
			if err != nil {
				return err
			}
			a.println(names...)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&full, "full", "f", false, "print absolute URLs")
	return cmd
}

func (a *app) globCommand() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "glob PATTERN",
		Short: "List the objects matching a wildcard URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			names, err := c.Glob(cmd.Context(), args[0], listOptions(full)...)
			if err != nil {
				return err
			}
			a.println(names...)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&full, "full", "f", false, "print absolute URLs")
	return cmd
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get URL [LOCAL]",
		Short: "Download an object (or receive a queue message) to a local file or stdout",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			data, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := a.stdout
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Create(args[1])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return a.transfer(w, data)
		},
	}
}

func (a *app) putCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put LOCAL|- URL",
		Short: "Upload a local file (or stdin) to an object, or enqueue it as a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(a.stdin)
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := a.transfer(&buf, data); err != nil {
				return err
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			return c.Put(cmd.Context(), args[1], buf.Bytes())
		},
	}
}

func (a *app) cpCommand() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "cp SRC DST",
		Short: "Copy an object, possibly across storage kinds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Cp(cmd.Context(), args[0], args[1], overwrite); err != nil {
				return err
			}
			if a.cfg.Progress {
				size, err := c.Size(cmd.Context(), args[1])
				if err == nil {
					_, _ = fmt.Fprintf(a.stderr, "copied %d bytes\n", size)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "replace an existing destination")
	return cmd
}

func (a *app) rmCommand() *cobra.Command {
	var snapshots bool
	cmd := &cobra.Command{
		Use:   "rm URL",
		Short: "Delete an object, every match of a wildcard URL, or a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			var opts []options.DeleteOption
			if snapshots {
				opts = append(opts, delete.WithIncludeSnapshots())
			}
			removed, err := c.Rm(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			if !removed {
				a.println("nothing matched")
				return nil
			}
			a.println("removed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&snapshots, "include-snapshots", false, "also delete blob snapshots")
	return cmd
}

// infoView is the YAML rendering of azfs.Info.
type infoView struct {
	Name         string            `yaml:"name"`
	Path         string            `yaml:"path"`
	Type         string            `yaml:"type"`
	Size         int64             `yaml:"size"`
	CreationTime string            `yaml:"creation_time,omitempty"`
	LastModified string            `yaml:"last_modified,omitempty"`
	ETag         string            `yaml:"etag,omitempty"`
	ContentType  string            `yaml:"content_type,omitempty"`
	Metadata     map[string]string `yaml:"metadata,omitempty"`
}

func newInfoView(info *azfs.Info) infoView {
	v := infoView{
		Name:        info.Name,
		Path:        info.Path,
		Type:        info.Type,
		Size:        info.Size,
		ETag:        info.ETag,
		ContentType: info.ContentType,
		Metadata:    info.Metadata,
	}
	if info.CreationTime != nil {
		v.CreationTime = info.CreationTime.UTC().Format("2006-01-02T15:04:05Z")
	}
	if info.LastModified != nil {
		v.LastModified = info.LastModified.UTC().Format("2006-01-02T15:04:05Z")
	}
	return v
}

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info URL",
		Short: "Print the metadata of an object, directory or queue as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			info, err := c.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(newInfoView(info)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func (a *app) existsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists URL",
		Short: "Print true when the object, directory, container or queue exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			ok, err := c.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.println(fmt.Sprint(ok))
			return nil
		},
	}
}

func (a *app) readCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "read URL...",
		Short: "Concatenate CSV, TSV or pickle frames and print them as CSV",
		Long: `read loads every URL (or the matches of one wildcard URL, or the files of one directory URL ending
in '/') and prints the rows in input order, with the union of their columns.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := azfile.ParseFormat(format)
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()
			out, err := c.Read(cmd.Context(), args, f, read.WithConcurrency(a.cfg.BatchConcurrency))
			if err != nil {
				return err
			}
			return frame.WriteDelimited(a.stdout, out, frame.CommaSeparator, true)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(azfile.FormatCSV), "input format: csv, table or pickle")
	cmd.Flags().Int("concurrency", 1, "number of files fetched at once")
	return cmd
}
