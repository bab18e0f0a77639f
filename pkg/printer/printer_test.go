package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Columns(t *testing.T) {
	doc := NewDocument(20)
	doc.Columns("Total:", "8500.00")

	out := string(doc.Bytes()[2:])
	assert.Equal(t, "Total:       8500.00\n", out)
}

func TestDocument_ColumnsOverflow(t *testing.T) {
	doc := NewDocument(16)
	doc.Columns("10 x Gold Cattle Feed", "8500.00")

	out := string(doc.Bytes()[2:])
	assert.Equal(t, "10 x Gold Cattle\nFeed\n         8500.00\n", out)
}

func TestDocument_StartsWithInit(t *testing.T) {
	doc := NewDocument(0)
	assert.Equal(t, 32, doc.Width())
	assert.True(t, bytes.HasPrefix(doc.Bytes(), []byte{ESC, '@'}))

	doc.Cut(true)
	assert.True(t, bytes.HasSuffix(doc.Bytes(), []byte{GS, 'V', 1}))
}

func TestNew(t *testing.T) {
	_, err := New(Config{Type: "usb"})
	assert.Error(t, err)

	_, err = New(Config{Type: "network"})
	assert.Error(t, err)

	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)

	p, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, p.Ready(context.Background()))
	assert.ErrorIs(t, p.Print(context.Background(), []byte("x")), ErrNotConfigured)
}

func TestNetworkPrinter_Print(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p, err := New(Config{Type: "network", Address: ln.Addr().String(), Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))

	select {
	case data := <-received:
		assert.Equal(t, "receipt", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("printer server received nothing")
	}
}
