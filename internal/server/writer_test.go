package server

import (
	"bufio"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/rpc"
)

func readAllFrames(t *testing.T, data []byte) []rpc.Envelope {
	t.Helper()
	br := bufio.NewReader(bytes.NewReader(data))
	var envelopes []rpc.Envelope
	for {
		body, err := rpc.ReadFrame(br)
		if err != nil {
			break
		}
		env, err := rpc.DecodeEnvelope(body)
		require.NoError(t, err)
		envelopes = append(envelopes, env)
	}
	return envelopes
}

func TestWriterTaskPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	wt := newWriterTask(&buf, "test")

	done := make(chan struct{})
	go func() {
		wt.run()
		close(done)
	}()

	wt.sendNotification("one", nil)
	wt.sendNotification("two", nil)
	wt.sendNotification("three", nil)
	wt.close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writer task did not stop after close")
	}

	envelopes := readAllFrames(t, buf.Bytes())
	require.Len(t, envelopes, 3)
	assert.Equal(t, "one", envelopes[0].Method)
	assert.Equal(t, "two", envelopes[1].Method)
	assert.Equal(t, "three", envelopes[2].Method)
}

func TestWriterTaskSendSuccessAndErrorResponses(t *testing.T) {
	var buf bytes.Buffer
	wt := newWriterTask(&buf, "test")

	done := make(chan struct{})
	go func() {
		wt.run()
		close(done)
	}()

	wt.sendSuccessResponse(rpc.ID(1), map[string]string{"ok": "yes"})
	wt.sendErrorResponse(rpc.ID(2), rpc.NewResponseError(rpc.CodeInvalidParams, "bad"))
	wt.close()
	<-done

	envelopes := readAllFrames(t, buf.Bytes())
	require.Len(t, envelopes, 2)
	assert.NotNil(t, envelopes[0].Result)
	require.NotNil(t, envelopes[1].Error)
	assert.Equal(t, rpc.CodeInvalidParams, envelopes[1].Error.Code)
}
