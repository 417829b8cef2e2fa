package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"

	"github.com/spraakbanken/lexmeta/i18n"
	"github.com/spraakbanken/lexmeta/internal/config"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "normalize":
		normalizeCmd(os.Args[2:])
	case "create":
		createCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	case "version":
		fmt.Printf("lexmeta %s\nbuild date: %s\nlast commit: %s\n",
			cleanVersionInfo(version), cleanVersionInfo(buildDate), cleanVersionInfo(gitCommit))
	case "-h", "-help", "--help", "help":
		usage()
	default:
		// lexmeta <dir> is the short form of lexmeta validate <dir>
		if isDir, err := fs.IsDir(sub); err == nil && isDir {
			validateCmd(os.Args[1:])
			return
		}
		usage()
		os.Exit(2)
	}
}

func usage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "lexmeta - metadata validator for lexical resources\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s [validate] [options] <dir>\n", name)
	fmt.Fprintf(os.Stderr, "  %s normalize [options] <file>\n", name)
	fmt.Fprintf(os.Stderr, "  %s create [options]\n", name)
	fmt.Fprintf(os.Stderr, "  %s schema\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n\n", name)
	fmt.Fprintf(os.Stderr, "Run '%s <command> -h' for the options of a command.\n", name)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// newFlagSet binds the shared settings and a usage line to a subcommand.
func newFlagSet(name, argsUsage string) (*flag.FlagSet, *config.Config) {
	conf := config.Load()
	fset := flag.NewFlagSet(name, flag.ExitOnError)
	fset.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s %s [options] %s\n\nOptions:\n", filepath.Base(os.Args[0]), name, argsUsage)
		fset.PrintDefaults()
	}
	conf.RegisterFlags(fset)
	return fset, conf
}

// setup fixes the settings and configures logging and message language.
func setup(conf *config.Config) {
	config.ValidateAndDefaults(conf)
	logging.SetupLogging(logging.LoggingConf{Path: conf.LogFile, Level: conf.LogLevel})
	i18n.SetLanguage(conf.Lang)
	log.Debug().Str("lang", i18n.Language().String()).Str("unknown", conf.Unknown).Msg("configuration loaded")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
