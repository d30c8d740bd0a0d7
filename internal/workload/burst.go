package workload

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/hiot/internal/busywait"
	"github.com/roach88/hiot/internal/codec"
	"github.com/roach88/hiot/internal/vitals"
)

// Transmission model constants.
const (
	txDelay       = 1000
	txFailModulus = 100
	txFailIndex   = 42
	burstWeight   = 1000
)

// Burst alternates idle monitoring with a generate, compress, packetize and
// transmit burst.
type Burst struct {
	base
	p BurstParams
}

// NewBurst returns the burst transmission workload.
func NewBurst(p BurstParams, logger *slog.Logger) *Burst {
	return &Burst{base: newBase("burst", logger), p: p}
}

func (b *Burst) Banner(w io.Writer) error {
	c := &console{w: w}
	c.println("=== Burst Data Transmission Workload ===")
	c.printf("Transmission Cycles: %d\n", b.p.Cycles)
	c.printf("Idle Duration: %d iterations\n", b.p.IdleDuration)
	c.printf("Packets per Burst: %d\n", b.p.PacketsPerBurst)
	c.printf("Packet Size: %d bytes\n\n", b.p.PacketSize)
	return c.err
}

// transmit verifies the frame trailer, spins for the link delay and reports
// whether the send succeeded. Every hundredth frame, offset 42, is lost.
func transmit(frame []byte, index int) bool {
	if !codec.Verify(frame) {
		return false
	}
	busywait.Delay(txDelay)
	return index%txFailModulus != txFailIndex
}

func (b *Burst) Run(ctx context.Context, w io.Writer) (*Summary, error) {
	if err := b.Banner(w); err != nil {
		return nil, err
	}
	c := &console{w: w}
	p := b.p

	rawCap := p.PacketsPerBurst * vitals.SensorPacketSize
	raw := make([]byte, 0, rawCap)
	compressed := make([]byte, 2*rawCap)
	packets := make([]byte, codec.PacketCount(len(compressed), p.PacketSize-codec.CRCSize)*p.PacketSize)

	var bytesSent, packetsSent, failed, idleCycles, burstCycles, compressedTotal, rawTotal int64

	for cycle := 0; cycle < p.Cycles; cycle++ {
		if err := b.checkpoint(ctx, cycle); err != nil {
			return nil, err
		}
		c.printf("--- Cycle %d/%d ---\n", cycle+1, p.Cycles)

		c.println("  Phase 1: Idle monitoring...")
		b.logger.Debug("phase", "cycle", cycle, "phase", "idle")
		busywait.Monitor(p.IdleDuration)
		idleCycles += int64(p.IdleDuration)

		c.println("  Phase 2: Generating sensor data...")
		raw = raw[:0]
		for i := 0; i < p.PacketsPerBurst; i++ {
			pkt := vitals.NewSensorPacket(uint16(cycle*p.PacketsPerBurst + i))
			var err error
			if raw, err = pkt.AppendBinary(raw); err != nil {
				return nil, fmt.Errorf("burst cycle %d: encode packet %d: %w", cycle, i, err)
			}
		}

		c.println("  Phase 3: Compressing data...")
		n, err := codec.EncodeRLE(compressed, raw)
		if err != nil {
			return nil, fmt.Errorf("burst cycle %d: %w", cycle, err)
		}
		c.printf("  Compression: %d -> %d bytes (%.2fx)\n", len(raw), n, float64(len(raw))/float64(max(n, 1)))
		b.logger.Debug("phase", "cycle", cycle, "phase", "compress", "raw", len(raw), "compressed", n)
		rawTotal += int64(len(raw))
		compressedTotal += int64(n)

		c.println("  Phase 4: Packetizing...")
		count, err := codec.PacketizeSealed(packets, compressed[:n], p.PacketSize)
		if err != nil {
			return nil, fmt.Errorf("burst cycle %d: %w", cycle, err)
		}

		c.printf("  Phase 5: Transmitting %d packets...\n", count)
		ok := 0
		for i := 0; i < count; i++ {
			if transmit(codec.Frame(packets, p.PacketSize, i), i) {
				ok++
				bytesSent += int64(p.PacketSize)
				packetsSent++
			} else {
				failed++
				b.logger.Debug("transmission failed", "cycle", cycle, "packet", i)
			}
		}
		burstCycles++
		c.printf("  Transmitted: %d/%d packets (%.1f%% success)\n", ok, count, pct(int64(ok), int64(count)))

		busywait.Monitor(p.IdleDuration / 2)
		idleCycles += int64(p.IdleDuration / 2)
		c.println("")
	}

	var avg int64
	if packetsSent > 0 {
		avg = bytesSent / packetsSent
	}
	ratio := float64(idleCycles) / float64(max(idleCycles+burstCycles*burstWeight, 1))

	c.println("=== Transmission Complete ===")
	c.printf("Total Bytes Transmitted: %d\n", bytesSent)
	c.printf("Total Packets Sent: %d\n", packetsSent)
	c.printf("Failed Packets: %d\n", failed)
	c.printf("Average Packet Size: %d bytes\n", avg)
	c.printf("Total Idle Cycles: %d\n", idleCycles)
	c.printf("Total Burst Cycles: %d\n", burstCycles)
	c.printf("Idle/Active Ratio: %.2f\n", ratio)
	if c.err != nil {
		return nil, c.err
	}

	s := newSummary(b.name)
	s.count("bytes_sent", bytesSent)
	s.count("packets_sent", packetsSent)
	s.count("packets_failed", failed)
	s.count("idle_cycles", idleCycles)
	s.count("burst_cycles", burstCycles)
	s.count("avg_packet_size", avg)
	s.count("compressed_bytes", compressedTotal)
	s.count("raw_bytes", rawTotal)
	s.ratio("idle_active_ratio", ratio)
	if rawTotal > 0 {
		s.ratio("compression_ratio", float64(rawTotal)/float64(max(compressedTotal, 1)))
	}
	return s.sealed()
}
