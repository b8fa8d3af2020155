// vcardctl - vCard 4.0 toolbox
//
// Usage:
//
//	vcardctl validate [file]            Parse and validate, report card count
//	vcardctl fmt [--gzip] [file]        Re-encode with canonical folding
//	vcardctl to-json [file]             Convert vCard to jCard (RFC 7095)
//	vcardctl from-json [file]           Convert jCard back to vCard
//
// If no file is given, reads from stdin. Gzip input (.vcf.gz) is
// detected by its magic bytes and decompressed transparently.
//
// A .env file in the working directory is loaded if present;
// VCARDCTL_LOG=debug raises the log level.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzip"
	"github.com/urfave/cli/v2"

	"github.com/tmpfs/vcard4"
	"github.com/tmpfs/vcard4/jcard"
)

func main() {
	_ = godotenv.Load()

	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("VCARDCTL_LOG"), "debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	app := &cli.App{
		Name:  "vcardctl",
		Usage: "parse, validate and convert vCard 4.0 data",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "parse and validate, report card count",
				ArgsUsage: "[file]",
				Action:    cmdValidate,
			},
			{
				Name:      "fmt",
				Usage:     "re-encode with canonical CRLF folding",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "gzip", Usage: "gzip the output"},
				},
				Action: cmdFmt,
			},
			{
				Name:      "to-json",
				Usage:     "convert vCard to jCard (RFC 7095)",
				ArgsUsage: "[file]",
				Action:    cmdToJSON,
			},
			{
				Name:      "from-json",
				Usage:     "convert jCard back to vCard",
				ArgsUsage: "[file]",
				Action:    cmdFromJSON,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("vcardctl failed", "err", err)
		os.Exit(1)
	}
}

// readInput reads the first argument as a file, or stdin when absent.
// Gzip payloads are recognized by their magic bytes.
func readInput(c *cli.Context) ([]byte, error) {
	var r io.Reader = os.Stdin
	if name := c.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return data, nil
}

func cmdValidate(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}
	cards, err := vcard4.Parse(string(data))
	if err != nil {
		return err
	}
	for _, card := range cards {
		slog.Debug("card ok", "fn", strings.Join(card.FormattedNames(), "; "), "uid", card.UID())
	}
	fmt.Printf("%d card(s) valid\n", len(cards))
	return nil
}

func cmdFmt(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}
	cards, err := vcard4.Parse(string(data))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if c.Bool("gzip") {
		zw := gzip.NewWriter(os.Stdout)
		defer zw.Close()
		out = zw
	}
	for _, card := range cards {
		s, err := card.Encode()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(out, s); err != nil {
			return err
		}
	}
	return nil
}

func cmdToJSON(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}
	cards, err := vcard4.Parse(string(data))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	for _, card := range cards {
		j, err := jcard.Encode(card)
		if err != nil {
			return err
		}
		if err := enc.Encode(json.RawMessage(j)); err != nil {
			return err
		}
	}
	return nil
}

func cmdFromJSON(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		card, err := jcard.Decode(raw)
		if err != nil {
			return err
		}
		s, err := card.Encode()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(os.Stdout, s); err != nil {
			return err
		}
	}
}
