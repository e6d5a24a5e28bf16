package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"

	"github.com/umputun/coupons/app/coupon"
	"github.com/umputun/coupons/app/server"
)

type options struct {
	Parts      int  `long:"parts" env:"PARTS" default:"3" description:"number of parts in a code"`
	PartLength int  `long:"part-length" env:"PART_LENGTH" default:"4" description:"symbols per part, check symbol included"`
	Dbg        bool `long:"dbg" env:"DEBUG" description:"debug mode"`

	Generate  generateCmd  `command:"generate" description:"generate codes"`
	Validate  validateCmd  `command:"validate" description:"validate codes, fails if any code is invalid"`
	Normalize normalizeCmd `command:"normalize" description:"print codes in canonical form"`
	Server    serverCmd    `command:"server" description:"run rest api server"`
}

type generateCmd struct {
	Count int    `short:"n" long:"count" default:"1" description:"number of codes"`
	Seed  string `long:"seed" description:"seed for reproducible code, count ignored"`
}

type validateCmd struct {
	Args struct {
		Codes []string `positional-arg-name:"CODE" required:"1"`
	} `positional-args:"yes"`
}

type normalizeCmd struct {
	Args struct {
		Codes []string `positional-arg-name:"CODE" required:"1"`
	} `positional-args:"yes"`
}

type serverCmd struct {
	Listen    string  `long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
	MaxBatch  int     `long:"max-batch" env:"MAX_BATCH" default:"100" description:"max codes per generate request"`
	RateLimit float64 `long:"limit" env:"RATE_LIMIT" default:"10" description:"requests per second per client"`
	IPSecret  string  `long:"ip-secret" env:"IP_SECRET" default:"coupons" description:"secret for client IP hashing in logs"`
}

var opts options

var revision = "unknown"

var stdout io.Writer = os.Stdout

// errInvalidCodes returned by validate command to get non-zero exit code
var errInvalidCodes = errors.New("invalid codes")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errInvalidCodes) {
			os.Exit(2)
		}
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// run parses args and executes the selected command
func run(args []string) error {
	opts = options{}
	p := flags.NewParser(&opts, flags.Default)
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLog(opts.Dbg)
		log.Printf("[DEBUG] coupons %s", revision)
		return cmd.Execute(args)
	}
	_, err := p.ParseArgs(args)
	return err
}

// Execute prints generated codes, one per line
func (c *generateCmd) Execute(_ []string) error {
	coder, err := makeCoder()
	if err != nil {
		return err
	}

	if c.Seed != "" {
		code, err := coder.GenerateFromSeed([]byte(c.Seed))
		if err != nil {
			return fmt.Errorf("generate from seed: %w", err)
		}
		_, _ = fmt.Fprintln(stdout, code)
		return nil
	}

	codes, err := coder.GenerateBatch(c.Count)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	for _, code := range codes {
		_, _ = fmt.Fprintln(stdout, code)
	}
	return nil
}

// Execute prints canonical form of each valid code and reason for invalid ones
func (c *validateCmd) Execute(_ []string) error {
	coder, err := makeCoder()
	if err != nil {
		return err
	}

	invalid := 0
	for _, raw := range c.Args.Codes {
		code, err := coder.Parse(raw)
		if err != nil {
			invalid++
			_, _ = fmt.Fprintf(stdout, "%s\tinvalid, %v\n", raw, err)
			continue
		}
		_, _ = fmt.Fprintf(stdout, "%s\tvalid\n", code)
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidCodes, invalid, len(c.Args.Codes))
	}
	return nil
}

// Execute prints normalized codes, nothing is validated
func (c *normalizeCmd) Execute(_ []string) error {
	coder, err := makeCoder()
	if err != nil {
		return err
	}
	for _, raw := range c.Args.Codes {
		_, _ = fmt.Fprintln(stdout, coder.Normalize(raw))
	}
	return nil
}

// Execute runs rest server till SIGINT or SIGTERM
func (c *serverCmd) Execute(_ []string) error {
	coder, err := makeCoder()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(coder, revision, server.Config{
		Listen:    c.Listen,
		MaxBatch:  c.MaxBatch,
		RateLimit: c.RateLimit,
		IPSecret:  c.IPSecret,
	})
	if err := srv.Run(ctx); err != nil {
		log.Printf("[ERROR] server failed, %v", err)
		return err
	}
	return nil
}

func makeCoder() (*coupon.Coder, error) {
	coder, err := coupon.New(coupon.Params{Parts: opts.Parts, PartLength: opts.PartLength})
	if err != nil {
		return nil, fmt.Errorf("can't make coder: %w", err)
	}
	return coder, nil
}

func setupLog(dbg bool) {
	// logs go to stderr, stdout is for codes
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.CallerFunc, log.Msec, log.LevelBraces, log.Out(os.Stderr), log.Err(os.Stderr))
		return
	}
	log.Setup(log.Msec, log.LevelBraces, log.Out(os.Stderr), log.Err(os.Stderr))
}
