// Package network receives head tracking data over UDP.
package network

import (
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"headmouse/internal/protocol"
)

// PoseReceiver listens for OpenTrack UDP frames and keeps the most recent one.
type PoseReceiver struct {
	listenAddr string
	timeout    time.Duration
	conn       *net.UDPConn
	done       chan struct{}

	mu       sync.Mutex
	latest   protocol.OpenTrackFrame
	received time.Time
	frames   uint64
	dropped  uint64
}

// NewPoseReceiver creates a receiver for listenAddr ("ip:port").
// Frames older than timeout are treated as missing.
func NewPoseReceiver(listenAddr string, timeout time.Duration) *PoseReceiver {
	return &PoseReceiver{
		listenAddr: listenAddr,
		timeout:    timeout,
		done:       make(chan struct{}),
	}
}

// Start binds the socket and begins receiving in the background.
func (r *PoseReceiver) Start() error {
	addr, err := net.ResolveUDPAddr("udp", r.listenAddr)
	if err != nil {
		return err
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	r.conn = conn

	log.Printf("Pose: Listening for OpenTrack frames on %s", conn.LocalAddr())

	go r.readLoop()
	return nil
}

// Addr returns the bound address, useful when listening on port 0.
func (r *PoseReceiver) Addr() net.Addr {
	if r.conn == nil {
		return nil
	}
	return r.conn.LocalAddr()
}

// readLoop reads datagrams until Stop.
func (r *PoseReceiver) readLoop() {
	buf := make([]byte, 512)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-r.done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}

		frame, err := protocol.DecodeOpenTrack(buf[:n])
		r.mu.Lock()
		if err != nil {
			r.dropped++
			r.mu.Unlock()
			continue
		}
		if r.frames == 0 {
			log.Printf("Pose: First frame received (yaw %.1f, pitch %.1f)", frame.Yaw, frame.Pitch)
		}
		r.latest = frame
		r.received = time.Now()
		r.frames++
		r.mu.Unlock()
	}
}

// Latest returns the newest frame if it arrived within the timeout of now.
func (r *PoseReceiver) Latest(now time.Time) (protocol.OpenTrackFrame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.received.IsZero() || now.Sub(r.received) > r.timeout {
		return protocol.OpenTrackFrame{}, false
	}
	return r.latest, true
}

// Stats returns the number of accepted and malformed datagrams.
func (r *PoseReceiver) Stats() (frames, dropped uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames, r.dropped
}

// Stop closes the socket.
func (r *PoseReceiver) Stop() {
	select {
	case <-r.done:
		return
	default:
		close(r.done)
	}
	if r.conn != nil {
		r.conn.Close()
	}
}
