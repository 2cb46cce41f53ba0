package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pitabwire/util"

	"github.com/itoolpack/itoolpack/config"
	"github.com/itoolpack/itoolpack/keyboard/telegram"
	"github.com/itoolpack/itoolpack/localization"
	"github.com/itoolpack/itoolpack/version"
)

const minArgsCommand = 1

func main() {
	exitOnErr(run(context.Background(), os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < minArgsCommand {
		usage(stdout)
		return errors.New("command is required")
	}

	switch args[0] {
	case "languages":
		return cmdLanguages(ctx, args[1:], stdout)
	case "validate":
		return cmdValidate(ctx, args[1:], stdout)
	case "text":
		return cmdText(ctx, args[1:], stdout)
	case "keyboard":
		return cmdKeyboard(ctx, args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "itoolpack %s\n", version.String())
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("unknown command: %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "itoolpack <command> [flags] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  languages                 list registered languages")
	fmt.Fprintln(w, "  validate                  check every entry of every language")
	fmt.Fprintln(w, "  text <key> <lang>         print the text for key")
	fmt.Fprintln(w, "  keyboard <key> <lang>     print the Telegram inline keyboard for key as JSON")
	fmt.Fprintln(w, "  version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags (all commands):")
	fmt.Fprintln(w, "  --env-file FILE   load environment variables before reading configuration")
	fmt.Fprintln(w, "  --dir DIR         locales directory (LOCALES_DIR)")
	fmt.Fprintln(w, "  --fallback CODE   fallback language (FALLBACK_LANGUAGE)")
}

type storeFlags struct {
	envFile  string
	dir      string
	fallback string
}

func newFlagSet(name string) (*flag.FlagSet, *storeFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	sf := &storeFlags{}
	fs.StringVar(&sf.envFile, "env-file", "", "environment file to load")
	fs.StringVar(&sf.dir, "dir", "", "locales directory")
	fs.StringVar(&sf.fallback, "fallback", "", "fallback language")
	return fs, sf
}

// openStore loads the env file, reads configuration and builds the store with
// a logger configured the same way for every command.
func openStore(ctx context.Context, sf *storeFlags) (context.Context, *localization.Store, error) {
	if sf.envFile != "" {
		if err := godotenv.Load(sf.envFile); err != nil {
			return ctx, nil, fmt.Errorf("load env file %s: %w", sf.envFile, err)
		}
	}

	cfg, err := config.FromEnv[config.ConfigurationDefault]()
	if err != nil {
		return ctx, nil, err
	}
	if sf.dir != "" {
		cfg.LocalesDir = sf.dir
	}
	if sf.fallback != "" {
		cfg.FallbackLanguage = sf.fallback
	}

	ctx = withLogger(ctx, &cfg)
	ctx = config.ToContext(ctx, &cfg)

	store, err := localization.NewStoreFromConfig(ctx, &cfg)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, store, nil
}

func withLogger(ctx context.Context, cfg config.ConfigurationLogLevel) context.Context {
	var opts []util.Option

	logLevel, err := util.ParseLevel(cfg.LoggingLevel())
	if err == nil {
		opts = append(opts, util.WithLogLevel(logLevel))
	}
	opts = append(opts,
		util.WithLogTimeFormat(cfg.LoggingTimeFormat()),
		util.WithLogNoColor(!cfg.LoggingColored()))
	if cfg.LoggingShowStackTrace() {
		opts = append(opts, util.WithLogStackTrace())
	}

	log := util.NewLogger(ctx, opts...)
	return util.ContextWithLogger(ctx, log)
}

func cmdLanguages(ctx context.Context, args []string, stdout io.Writer) error {
	fs, sf := newFlagSet("languages")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, store, err := openStore(ctx, sf)
	if err != nil {
		return err
	}

	for _, code := range store.Languages() {
		marker := ""
		if code == store.Fallback() {
			marker = " (fallback)"
		}
		fmt.Fprintf(stdout, "%s\t%d keys%s\n", code, len(store.Keys(code)), marker)
	}
	return nil
}

func cmdValidate(ctx context.Context, args []string, stdout io.Writer) error {
	fs, sf := newFlagSet("validate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, store, err := openStore(ctx, sf)
	if err != nil {
		return err
	}

	if err = store.Validate(); err != nil {
		util.Log(ctx).WithError(err).Error("translation entries failed validation")
		return err
	}

	fmt.Fprintf(stdout, "ok: %s\n", strings.Join(store.Languages(), ", "))
	return nil
}

func cmdText(ctx context.Context, args []string, stdout io.Writer) error {
	fs, sf := newFlagSet("text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("key and language are required")
	}
	_, store, err := openStore(ctx, sf)
	if err != nil {
		return err
	}

	text, err := store.Text(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, text)
	return nil
}

func cmdKeyboard(ctx context.Context, args []string, stdout io.Writer) error {
	fs, sf := newFlagSet("keyboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("key and language are required")
	}
	_, store, err := openStore(ctx, sf)
	if err != nil {
		return err
	}

	markup, err := telegram.Render(store, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(markup)
}

func exitOnErr(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
