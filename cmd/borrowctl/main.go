package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equipment_borrow/config"
	"equipment_borrow/gateway"
	"equipment_borrow/identity"
	"equipment_borrow/session"
	"equipment_borrow/telemetry"
)

func main() {
	cfgPath := flag.String("config", "", "path to borrowctl.toml")
	flag.Parse()

	cfg, err := config.LoadClient(*cfgPath)
	if err != nil {
		log.Fatalf("borrowctl: %v", err)
	}

	shutdownTelemetry := telemetry.Setup("borrowctl")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("borrowctl: timezone %q: %v, using local", cfg.Timezone, err)
		loc = time.Local
	}

	// 未配置密钥时，本进程内的 provider 与 authenticator 共用一个随机密钥
	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 && !cfg.AllowUnverified {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("borrowctl: token secret: %v", err)
		}
	}

	provider := &identity.StaticProvider{
		Email:    cfg.Email,
		Name:     cfg.Name,
		Secret:   secret,
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
	}
	auth := &identity.TokenAuthenticator{
		Secret:          secret,
		Issuer:          cfg.TokenIssuer,
		Audience:        cfg.TokenAudience,
		AllowUnverified: cfg.AllowUnverified,
	}

	client := gateway.New(cfg.APIURL)
	store := session.NewFileStore(cfg.SessionFile)

	in := bufio.NewScanner(os.Stdin)
	notifier := &terminalNotifier{in: in, out: os.Stdout}
	gw := gateway.NewSessionGateway(client, provider, auth, store, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := &shell{
		in:       in,
		out:      os.Stdout,
		gw:       gw,
		client:   client,
		provider: provider,
		notify:   notifier,
		loc:      loc,
	}
	log.Printf("borrowctl: api=%s session=%s", client.BaseURL(), store.Path())
	if err := sh.run(ctx); err != nil {
		log.Printf("borrowctl: %v", err)
	}
}
