package simradio

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/korken89/crkbd-shockburst/clock"
	"github.com/korken89/crkbd-shockburst/nrfradio"
	"github.com/korken89/crkbd-shockburst/packet"
)

func TestSendNoCcaRecvRoundTrip(t *testing.T) {
	medium := NewMedium()
	clk := clock.NewFakeClock()

	tx := nrfradio.Init(New(medium, clk))
	rx := nrfradio.Init(New(medium, clk))
	tx.SetChannel(11)
	rx.SetChannel(11)

	recvDone := make(chan error, 1)
	recvPkt := packet.New()
	go func() {
		_, _, err := rx.Recv(context.Background(), recvPkt)
		recvDone <- err
	}()

	time.Sleep(10 * time.Millisecond) // let the receiver start listening

	txPkt := packet.New()
	txPkt.CopyFromSlice([]byte("hello"))
	if _, err := tx.SendNoCca(context.Background(), txPkt); err != nil {
		t.Fatalf("SendNoCca: %v", err)
	}

	select {
	case err := <-recvDone:
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv did not complete")
	}

	if !bytes.Equal(recvPkt.Payload(), []byte("hello")) {
		t.Fatalf("payload = %q, want %q", recvPkt.Payload(), "hello")
	}
}

func TestSendCcaAlwaysIdle(t *testing.T) {
	medium := NewMedium()
	clk := clock.NewFakeClock()

	tx := nrfradio.Init(New(medium, clk))
	tx.SetChannel(20)

	pkt := packet.New()
	if _, err := tx.Send(context.Background(), pkt); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestNotListeningMissesFrame(t *testing.T) {
	medium := NewMedium()
	clk := clock.NewFakeClock()

	tx := nrfradio.Init(New(medium, clk))
	tx.SetChannel(30)

	pkt := packet.New()
	if _, err := tx.SendNoCca(context.Background(), pkt); err != nil {
		t.Fatalf("SendNoCca: %v", err)
	}
	// No receiver was listening; nothing should panic or block. The test passing without
	// a timeout is the assertion.
}
