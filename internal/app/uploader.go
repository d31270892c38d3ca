package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/vu2ptt/upload-to-rbn/internal/domain"
	"github.com/vu2ptt/upload-to-rbn/internal/ports"
	"github.com/vu2ptt/upload-to-rbn/pkg/wsjtx"
)

// sizeWarnThreshold is the cumulative datagram byte count above which the
// run ends with an advisory: past 64 KiB of decodes per upload cycle the
// aggregator is known to drop spots.
const sizeWarnThreshold = 65535

// Config contains configuration for the upload loop.
type Config struct {
	// SoftwareID is the identifier announced in every datagram.
	SoftwareID string

	// DECall, DEGrid and DXGrid are placeholder operator fields for
	// status datagrams.
	DECall string
	DEGrid string
	DXGrid string

	// StatusPause is how long to pause after a status datagram before
	// the next send, giving the aggregator time to switch bands.
	StatusPause time.Duration
}

// Uploader drives the decode upload loop: read a line, parse it, snap the
// frequency to its band, announce band changes with a status datagram and
// forward the decode. Band state lives here and nowhere else.
type Uploader struct {
	config Config
	source ports.DecodeSource
	sender ports.DatagramSender
	logger ports.Logger

	runID string

	// bandHz is the base frequency announced by the most recent status
	// datagram; zero until the first decode of the run.
	bandHz int32

	totalBytes int
	decodes    int
	skipped    int
}

// NewUploader creates an uploader with the given dependencies.
func NewUploader(config Config, source ports.DecodeSource, sender ports.DatagramSender, logger ports.Logger) *Uploader {
	return &Uploader{
		config: config,
		source: source,
		sender: sender,
		logger: logger,
		runID:  ksuid.New().String(),
	}
}

// Run executes the upload loop until the source is exhausted or the
// context is canceled. Send failures are fatal; parse failures skip the
// line and continue.
func (u *Uploader) Run(ctx context.Context) error {
	u.logger.Info("starting upload run",
		ports.Str("run_id", u.runID),
		ports.Str("software_id", u.config.SoftwareID))

	if err := u.source.Open(ctx); err != nil {
		return fmt.Errorf("open decode source: %w", err)
	}
	defer u.source.Close()

	for {
		line, err := u.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, context.Canceled) {
				// Signal-stopped follow run still gets its summary.
				u.finish()
			}
			return err
		}

		if err := u.handle(line); err != nil {
			return err
		}
	}

	u.finish()
	return nil
}

// handle processes one log line.
func (u *Uploader) handle(line string) error {
	rec, err := domain.ParseDecode(line)
	if err != nil {
		u.skipped++
		u.logger.Debug("skipping unparseable line", ports.Err(err))
		return nil
	}

	band := domain.BandFor(rec.FreqHz)
	if band != u.bandHz {
		status := wsjtx.Status{
			ID:     u.config.SoftwareID,
			DialHz: band,
			DXCall: rec.Call,
			Report: strconv.Itoa(int(rec.SNR)),
			DECall: u.config.DECall,
			DEGrid: u.config.DEGrid,
			DXGrid: u.config.DXGrid,
		}
		if err := u.send(status.Encode()); err != nil {
			return err
		}
		u.bandHz = band
		u.logger.Debug("band change announced", ports.Int32("dial_hz", band))

		// Give the aggregator time to process the band change before
		// the decode that triggered it arrives.
		time.Sleep(u.config.StatusPause)
	}

	decode := wsjtx.Decode{
		ID:      u.config.SoftwareID,
		SNR:     rec.SNR,
		DT:      rec.DT,
		DeltaHz: rec.FreqHz - band,
		Message: fmt.Sprintf("CQ %s %s", rec.Call, rec.Grid),
	}
	if err := u.send(decode.Encode()); err != nil {
		return err
	}
	u.decodes++
	return nil
}

// send transmits one datagram and accounts for its size.
func (u *Uploader) send(payload []byte) error {
	if err := u.sender.Send(payload); err != nil {
		return err
	}
	u.totalBytes += len(payload)
	return nil
}

// finish logs the run summary and the oversize advisory if needed.
func (u *Uploader) finish() {
	u.logger.Info("upload run complete",
		ports.Str("run_id", u.runID),
		ports.Int("decodes", u.decodes),
		ports.Int("skipped", u.skipped),
		ports.Int("bytes", u.totalBytes))

	if u.totalBytes > sizeWarnThreshold {
		u.logger.Warn("total upload exceeds 64 KiB, risk of lost decodes",
			ports.Int("bytes", u.totalBytes))
	}
}
