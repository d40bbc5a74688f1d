package server

import (
	"io"

	"go.uber.org/zap"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/logging"
	"github.com/GoogleChromeLabs/mojom-language-support/internal/rpc"
)

// writerTask owns the output stream exclusively (component G, §5): every
// outbound message, whatever goroutine produces it, is encoded and handed
// to a single queue so the bytes written to out never interleave.
type writerTask struct {
	out    io.Writer
	queue  *unboundedQueue[[]byte]
	logger *zap.Logger
}

func newWriterTask(out io.Writer, sessionID string) *writerTask {
	return &writerTask{
		out:    out,
		queue:  newUnboundedQueue[[]byte](),
		logger: logging.Get(logging.CategoryRPC).With(zap.String("session", sessionID)),
	}
}

// run drains the queue and writes frames until the queue is closed and
// empty. It is meant to be the body of its own goroutine.
func (w *writerTask) run() {
	for {
		body, ok := w.queue.pop()
		if !ok {
			return
		}
		if err := rpc.WriteFrame(w.out, body); err != nil {
			w.logger.Warn("writing frame", zap.Error(err))
		}
	}
}

func (w *writerTask) close() {
	w.queue.close()
}

func (w *writerTask) sendSuccessResponse(id rpc.ID, result interface{}) {
	body, err := rpc.EncodeSuccessResponse(id, result)
	if err != nil {
		w.logger.Error("encoding success response", zap.Error(err))
		return
	}
	w.queue.push(body)
}

func (w *writerTask) sendErrorResponse(id rpc.ID, respErr *rpc.ResponseError) {
	body, err := rpc.EncodeErrorResponse(id, respErr)
	if err != nil {
		w.logger.Error("encoding error response", zap.Error(err))
		return
	}
	w.queue.push(body)
}

func (w *writerTask) sendNotification(method string, params interface{}) {
	body, err := rpc.EncodeNotification(method, params)
	if err != nil {
		w.logger.Error("encoding notification", zap.String("method", method), zap.Error(err))
		return
	}
	w.queue.push(body)
}
