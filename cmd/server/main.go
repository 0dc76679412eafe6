package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"lob/api/grpcserver"
	"lob/api/pb"
	"lob/config"
	"lob/domain/book"
	"lob/infra/kafka"
	"lob/infra/memory"
	"lob/infra/outbox"
	"lob/infra/sequence"
	"lob/infra/wal"
	"lob/jobs/broadcaster"
	"lob/jobs/depth"
	"lob/metrics"
	"lob/service"
	"lob/snapshot"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}

	// ---------------- Entry WAL ----------------

	entryWAL, err := wal.Open(wal.Config{
		Dir:         cfg.WALDir,
		SegmentSize: cfg.WALSegmentSize,
	})
	if err != nil {
		log.Fatal("entry WAL init failed", zap.Error(err))
	}
	defer entryWAL.Close()

	// ---------------- Outbox ----------------

	ob, err := outbox.Open(cfg.OutboxDir)
	if err != nil {
		log.Fatal("outbox init failed", zap.Error(err))
	}
	defer ob.Close()

	tradeHigh, err := ob.MaxSeq()
	if err != nil {
		log.Fatal("outbox scan failed", zap.Error(err))
	}

	// ---------------- Memory ----------------

	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	ring := memory.NewRing[*book.Order](cfg.RingSize)
	clock := &memory.Clock{}
	reader := snapshot.NewReader(clock)

	// ---------------- Domain ----------------

	b := book.New()

	// ---------------- Recovery: snapshot + WAL tail ----------------

	seqGen := sequence.New(0)

	snapPath := filepath.Join(cfg.SnapshotDir, "snapshot.bin")
	snapSeq, err := snapshot.Load(snapPath, b, pool)
	if err != nil {
		log.Fatal("snapshot load failed", zap.Error(err))
	}
	if snapSeq > 0 {
		log.Info("snapshot loaded", zap.Uint64("seq", snapSeq))
	}

	if err := service.Replay(cfg.WALDir, snapSeq, b, pool, seqGen, log); err != nil {
		log.Fatal("WAL replay failed", zap.Error(err))
	}

	// ---------------- Service ----------------

	stats := metrics.New(prometheus.DefaultRegisterer)
	svc := service.New(service.Deps{
		Book:     b,
		Pool:     pool,
		Ring:     ring,
		Clock:    clock,
		Reader:   reader,
		Seq:      seqGen,
		TradeSeq: sequence.New(tradeHigh),
		WAL:      entryWAL,
		Outbox:   ob,
		Stats:    stats,
		Log:      log,
	})

	// ---------------- Background Jobs ----------------

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		ticker := time.NewTicker(cfg.EpochInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				svc.AdvanceEpoch()
			}
		}
	}()

	snapWriter := &snapshot.Writer{Dir: cfg.SnapshotDir}
	go func() {
		ticker := time.NewTicker(cfg.SnapshotInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				seq, err := svc.WriteSnapshot(snapWriter)
				if err != nil {
					log.Error("snapshot failed", zap.Error(err))
					continue
				}
				log.Info("snapshot written", zap.Uint64("seq", seq))
			}
		}
	}()

	bc, err := broadcaster.New(ob, cfg.Brokers, cfg.TradeTopic, cfg.BroadcastInterval, log)
	if err != nil {
		log.Fatal("broadcaster init failed", zap.Error(err))
	}
	defer bc.Close()
	go bc.Run(ctx)

	depthProducer := kafka.NewProducer(cfg.Brokers, cfg.DepthTopic)
	defer depthProducer.Close()
	go depth.New(svc, depthProducer, cfg.DepthInterval, log).Run(ctx)

	// ---------------- Metrics ----------------

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			log.Warn("metrics server exited", zap.Error(err))
		}
	}()

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal("listen failed", zap.Error(err))
	}

	grpcSrv := grpc.NewServer()
	pb.RegisterOrderServiceServer(grpcSrv, grpcserver.New(svc, log))

	go func() {
		<-ctx.Done()
		grpcSrv.GracefulStop()
	}()

	log.Info("engine running", zap.String("addr", cfg.GRPCAddr))
	if err := grpcSrv.Serve(lis); err != nil {
		log.Fatal("gRPC server exited", zap.Error(err))
	}
}
