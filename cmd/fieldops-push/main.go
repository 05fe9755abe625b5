package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fieldops/fieldops-push-server/config"
	"github.com/fieldops/fieldops-push-server/db"
	"github.com/fieldops/fieldops-push-server/dispatcher"
	"github.com/fieldops/fieldops-push-server/gateway"
	"github.com/fieldops/fieldops-push-server/gateway/provider/expo"
	"github.com/fieldops/fieldops-push-server/gateway/provider/fcm"
	"github.com/fieldops/fieldops-push-server/monitor"
	"github.com/fieldops/fieldops-push-server/notifier"
	"github.com/fieldops/fieldops-push-server/push"
	"github.com/fieldops/fieldops-push-server/queue"
	"github.com/fieldops/fieldops-push-server/redisprovider"
	"github.com/fieldops/fieldops-push-server/repo/itemrepo"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo"
	"github.com/fieldops/fieldops-push-server/repo/userrepo"
)

var log = logger.NewNamed("main")

var (
	flagConfigFile = flag.String("c", "", "path to config file (default $FIELDOPS_CONFIG or etc/fieldops-push.yml)")
	flagVersion    = flag.Bool("v", false, "show version and exit")
	flagHelp       = flag.Bool("h", false, "show help and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println(app.AppName)
		fmt.Println(app.VersionDescription())
		return
	}
	if *flagHelp {
		flag.PrintDefaults()
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("can't load .env", zap.Error(err))
	}

	conf, err := config.NewFromFile(configPath())
	if err != nil {
		log.Fatal("can't open config file", zap.Error(err))
	}
	conf.Log.ApplyGlobal()

	a := new(app.App)
	Bootstrap(a, conf)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err = a.Start(ctx); err != nil {
		log.Fatal("can't start app", zap.Error(err))
	}
	log.Info("app started", zap.String("version", a.Version()))

	signChan := make(chan os.Signal, 1)
	signal.Notify(signChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-signChan

	log.Info("received exit signal, stop app...", zap.String("signal", fmt.Sprint(sig)))

	ctx, cancel = context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err = a.Close(ctx); err != nil {
		log.Fatal("close error", zap.Error(err))
	} else {
		log.Info("goodbye!")
	}
	time.Sleep(time.Second / 3)
}

func configPath() string {
	if *flagConfigFile != "" {
		return *flagConfigFile
	}
	if path := os.Getenv("FIELDOPS_CONFIG"); path != "" {
		return path
	}
	return "etc/fieldops-push.yml"
}

func Bootstrap(a *app.App, conf *config.Config) {
	a.Register(conf).
		Register(metric.New()).
		Register(db.New()).
		Register(redisprovider.New()).
		Register(tokenrepo.New()).
		Register(itemrepo.New()).
		Register(userrepo.New()).
		Register(queue.New()).
		Register(gateway.New()).
		Register(expo.New()).
		Register(fcm.New()).
		Register(notifier.New()).
		Register(monitor.New()).
		Register(dispatcher.New()).
		Register(push.New())
}
