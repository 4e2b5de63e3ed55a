// winsd-policyd loads a TOML policy file of named security descriptors,
// answers an access query, and can stay running to hot-reload the file
// on change.
//
// Usage:
//
//	winsd-policyd -policy policy.toml -resource share/finance -trustee AU
//
// Options:
//
//	-policy   Path to the policy TOML file (required)
//	-resource Resource name to query
//	-trustee  Trustee to evaluate (SDDL alias or S- notation)
//	-watch    Keep running and reload the file on change
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pion/logging"

	"github.com/backkem/winsd/pkg/policy"
	"github.com/backkem/winsd/pkg/sid"
)

func main() {
	var (
		policyPath = flag.String("policy", "", "path to the policy TOML file")
		resource   = flag.String("resource", "", "resource name to query")
		trustee    = flag.String("trustee", "", "trustee to evaluate (alias or S- notation)")
		watch      = flag.Bool("watch", false, "keep running and reload the file on change")
	)
	flag.Parse()

	if *policyPath == "" {
		log.Fatal("-policy is required")
	}

	store, err := policy.Load(policy.Config{
		Path:          *policyPath,
		Resolver:      sid.StaticResolver{},
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	})
	if err != nil {
		log.Fatalf("Failed to load policy: %v", err)
	}

	if *resource != "" && *trustee != "" {
		t, err := sid.Parse(*trustee)
		if err != nil {
			log.Fatalf("Invalid trustee: %v", err)
		}
		granted, err := store.EffectiveAccess(*resource, t)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}
		fmt.Printf("%s @ %s: %s\n", t, *resource, granted)
	}

	if !*watch {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := store.Watch(ctx); err != nil {
		log.Fatalf("Failed to start watcher: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
}
