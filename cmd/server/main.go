package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxelfield.dev/internal/codec"
	"voxelfield.dev/internal/config"
	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/pyramid"
	"voxelfield.dev/internal/store"
	"voxelfield.dev/internal/terrain"
	"voxelfield.dev/internal/transport/ws"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to server.yaml (empty for defaults)")
		addr        = flag.String("addr", "", "http listen address (overrides config)")
		enablePprof = flag.Bool("pprof", false, "serve /debug/pprof endpoints")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	field := buildField(cfg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	if *enablePprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	mux.HandleFunc("/v1/ws", ws.NewServer(field, logger).Handler())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

// buildField constructs the pyramid, generates the terrain at full resolution
// and downsamples it into every coarser level.
func buildField(cfg config.Config, logger *log.Logger) *terrain.Field {
	b := store.Builder[terrain.Material, struct{}]{
		ChunkShape: cfg.ChunkShape(),
		Ambient:    terrain.Air,
	}

	var field *terrain.Field
	if cfg.CacheCapacity > 0 {
		c, err := codec.ByName(cfg.Codec)
		if err != nil {
			logger.Fatalf("codec: %v", err)
		}
		field = pyramid.NewCompressed(b, cfg.NumLevels, c, cfg.CacheCapacity)
	} else {
		field = pyramid.NewMap(b, cfg.NumLevels)
	}

	gen := terrain.NewGenerator(cfg.Terrain.Seed)
	gen.MaxHeight = int32(cfg.Terrain.MaxHeight)
	gen.SeaLevel = int32(cfg.Terrain.SeaLevel)

	size := int32(cfg.Terrain.Size)
	region := grid.NewExtent2(grid.Pt2(-size/2, -size/2), grid.Pt2(size, size))

	start := time.Now()
	gen.Generate(field.Level(0), region)
	logger.Printf("generated %dx%d terrain seed=%d in %s",
		size, size, cfg.Terrain.Seed, time.Since(start).Round(time.Millisecond))

	start = time.Now()
	field.DownsampleEntireMapAllLods(terrain.MajoritySampler{})
	logger.Printf("downsampled %d levels in %s", cfg.NumLevels, time.Since(start).Round(time.Millisecond))

	for lod := 0; lod < field.NumLevels(); lod++ {
		logger.Printf("lod %d: %d chunks", lod, field.Level(lod).NumChunks())
	}
	return field
}
