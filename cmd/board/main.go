package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/256dpi/xo"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/tomb.v2"

	"github.com/256dpi/board/api"
	"github.com/256dpi/board/blaze"
	"github.com/256dpi/board/coal"
	"github.com/256dpi/board/config"
	"github.com/256dpi/board/posts"
	"github.com/256dpi/board/web"
)

func main() {
	// load config
	cfg, err := config.Load()
	if err != nil {
		xo.Panic(err)
	}

	// prepare reporter
	errSink := xo.Sink("ERROR")
	reporter := func(err error) {
		_, _ = fmt.Fprintf(errSink, "%+v\n", err)
	}

	// open store
	store, err := openStore(cfg, reporter)
	if err != nil {
		xo.Panic(err)
	}
	defer store.Close()

	// create upload service
	service, err := uploadService(cfg, store)
	if err != nil {
		xo.Panic(err)
	}

	// prepare handler
	handler := api.New(api.Options{
		Posts:       posts.NewManager(store),
		Storage:     blaze.NewStorage(service, reporter),
		Assets:      web.DefaultAssetServer(),
		UploadLimit: cfg.UploadLimit,
		Logger:      xo.Sink("HTTP"),
		Reporter:    reporter,
	})

	// run server
	err = run(net.JoinHostPort("", cfg.Port), handler)
	if err != nil {
		xo.Panic(err)
	}
}

func openStore(cfg config.Config, reporter func(error)) (*coal.Store, error) {
	// open memory store
	if cfg.StoreURI == config.Memory {
		return coal.Open(nil, "social_media", reporter)
	}

	return coal.Connect(cfg.StoreURI, reporter)
}

func uploadService(cfg config.Config, store *coal.Store) (blaze.Service, error) {
	// prepare context
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.UploadService {
	case config.GridFS:
		// create gridfs service
		service := blaze.NewGridFS(store.Bucket("uploads"))
		err := service.Initialize(ctx)
		if err != nil {
			return nil, err
		}

		return service, nil
	case config.Minio:
		// create client
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: cfg.MinioSecure,
		})
		if err != nil {
			return nil, xo.W(err)
		}

		// create minio service
		service := blaze.NewMinio(client, cfg.MinioBucket)
		err = service.Initialize(ctx)
		if err != nil {
			return nil, err
		}

		return service, nil
	default:
		return blaze.NewDisk(cfg.UploadDir), nil
	}
}

func run(addr string, handler http.Handler) error {
	// prepare server
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// prepare tomb
	var tmb tomb.Tomb

	// serve requests
	tmb.Go(func() error {
		fmt.Printf("==> Listening on %s\n", addr)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			return xo.W(err)
		}
		return nil
	})

	// await signals
	tmb.Go(func() error {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(signals)

		select {
		case <-signals:
		case <-tmb.Dying():
		}

		// shutdown server
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := server.Shutdown(ctx)
		if err != nil {
			return xo.W(err)
		}

		return nil
	})

	return tmb.Wait()
}
