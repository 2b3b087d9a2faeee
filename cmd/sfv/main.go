// Command sfv decodes, encodes and checks HTTP structured field values.
//
//	sfv decode --type dictionary 'a=?0, b, c;foo=bar'
//	sfv decode --type list --json 'sugar, tea, rum'
//	sfv encode --type item '[1.5, [["q", true]]]'
//	sfv check --type item '"unterminated'
//
// Without arguments, decode and check read field lines from stdin
// and encode reads a JSON document from stdin.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ghettovoice/sfv"
	"github.com/ghettovoice/sfv/internal/errorutil"
	"github.com/ghettovoice/sfv/internal/log"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sfv:", err)
		os.Exit(1)
	}
}

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	log *slog.Logger
	dec *sfv.Decoder
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.Command {
	a := &app{in: in, out: out, errOut: errOut, log: log.Noop}
	return &cli.Command{
		Name:      "sfv",
		Usage:     "decode, encode and check HTTP structured field values",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load configuration from TOML `FILE`",
				Sources: cli.EnvVars("SFV_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: console, dev or none",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn or error",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "print the canonical form or the JSON form of a field value",
				ArgsUsage: "[VALUE...]",
				Flags:     []cli.Flag{typeFlag(), &cli.BoolFlag{Name: "json", Usage: "print the JSON form"}},
				Action:    a.decode,
			},
			{
				Name:      "encode",
				Usage:     "print the canonical form of a field given in the JSON form",
				ArgsUsage: "[JSON]",
				Flags:     []cli.Flag{typeFlag()},
				Action:    a.encode,
			},
			{
				Name:      "check",
				Usage:     "exit with non-zero status if a field value is malformed",
				ArgsUsage: "[VALUE...]",
				Flags:     []cli.Flag{typeFlag()},
				Action:    a.check,
			},
		},
	}
}

func typeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"t"},
		Value:   sfv.FieldItem.String(),
		Usage:   "field type: item, list or dictionary",
	}
}

func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}

	lvl, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return ctx, fmt.Errorf("log level: %w", err)
	}
	if a.log, err = log.New(cfg.Log.Format, lvl, a.errOut); err != nil {
		return ctx, err
	}
	a.dec = sfv.NewDecoder(&sfv.DecoderOptions{
		Limits: cfg.Limits.limits(),
		Logger: a.log,
	})
	a.log.LogAttrs(ctx, slog.LevelDebug, "configuration loaded",
		slog.String("log_format", cfg.Log.Format),
		slog.Any("limits", cfg.Limits),
	)
	return ctx, nil
}

func (a *app) decodeArgs(cmd *cli.Command) (sfv.Field, sfv.FieldType, error) {
	typ, err := sfv.ParseFieldType(cmd.String("type"))
	if err != nil {
		return nil, 0, err
	}
	values := cmd.Args().Slice()
	if len(values) == 0 {
		if values, err = readLines(a.in); err != nil {
			return nil, typ, err
		}
	}
	f, err := a.dec.Decode(typ, values...)
	return f, typ, err
}

func (a *app) decode(ctx context.Context, cmd *cli.Command) error {
	f, typ, err := a.decodeArgs(cmd)
	if err != nil {
		return err
	}

	var out []byte
	if cmd.Bool("json") {
		if out, err = json.Marshal(f); err != nil {
			return err
		}
	} else {
		s, err := sfv.Encode(f)
		if err != nil {
			return err
		}
		out = []byte(s)
	}
	a.log.LogAttrs(ctx, slog.LevelDebug, "field decoded", slog.String("type", typ.String()))
	_, err = fmt.Fprintf(a.out, "%s\n", out)
	return err
}

func (a *app) encode(ctx context.Context, cmd *cli.Command) error {
	typ, err := sfv.ParseFieldType(cmd.String("type"))
	if err != nil {
		return err
	}

	var data []byte
	if cmd.Args().Present() {
		data = []byte(cmd.Args().First())
	} else if data, err = io.ReadAll(a.in); err != nil {
		return err
	}

	f, err := sfv.FieldFromJSON(typ, data)
	if err != nil {
		return err
	}
	s, err := sfv.Encode(f)
	if err != nil {
		return err
	}
	a.log.LogAttrs(ctx, slog.LevelDebug, "field encoded", slog.String("type", typ.String()))
	_, err = fmt.Fprintln(a.out, s)
	return err
}

func (a *app) check(_ context.Context, cmd *cli.Command) error {
	if _, typ, err := a.decodeArgs(cmd); err != nil {
		if !errorutil.IsGrammarErr(err) {
			return err
		}
		return fmt.Errorf("malformed %s: %w", typ, err)
	}
	_, err := fmt.Fprintln(a.out, "ok")
	return err
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
