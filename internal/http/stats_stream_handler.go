package http

import (
	"context"
	"net/http"
	"time"

	"log-stats/internal/models"
	"log-stats/internal/reports"
	"log-stats/internal/shared/loggers"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamReadLimit  = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type statsStreamHandler struct {
	reportService reports.ReportService
	shutdown      context.Context
}

// NewStatsStreamHandler pushes the latest snapshot on connect and every new one after.
// Streams end when the client goes away or shutdown is cancelled.
func NewStatsStreamHandler(shutdown context.Context, reportService reports.ReportService) AppHttpHandler {
	return &statsStreamHandler{reportService: reportService, shutdown: shutdown}
}

// Handle serves GET /ws/stats.
func (h *statsStreamHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	logger := loggers.Ctx(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logger.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(h.shutdown, cancel)
	defer stop()

	updates, unsubscribe := h.reportService.SubscribeSnapshots(ctx)
	defer unsubscribe()

	metricStreamConnections.Inc()
	defer metricStreamConnections.Dec()
	logger.Info().Msg("snapshot stream opened")

	go readPump(conn, cancel)

	if err := writePump(ctx, conn, h.reportService.GetLatestSnapshot(ctx), updates); err != nil {
		logger.Debug().Err(err).Msg("snapshot stream write failed")
	}
	logger.Info().Msg("snapshot stream closed")
	return nil
}

// readPump discards client messages and cancels the stream once the peer is gone.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(ctx context.Context, conn *websocket.Conn, latest *models.Snapshot, updates <-chan *models.Snapshot) error {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	// Updates already covered by the snapshot sent on connect are skipped.
	var sentRound uint64
	if latest != nil {
		if err := writeSnapshot(conn, latest); err != nil {
			return err
		}
		sentRound = latest.Round
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return nil
		case snapshot, ok := <-updates:
			if !ok {
				return nil
			}
			if snapshot.Round <= sentRound {
				continue
			}
			if err := writeSnapshot(conn, snapshot); err != nil {
				return err
			}
			sentRound = snapshot.Round
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, snapshot *models.Snapshot) error {
	payload, err := sonic.ConfigStd.Marshal(snapshot)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	metricStreamSnapshotsSentTotal.Inc()
	return nil
}
