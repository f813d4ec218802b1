package engine

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"

	"github.com/smykla-labs/crashlink/internal/host"
	pkgconfig "github.com/smykla-labs/crashlink/pkg/config"
)

// Handshake is everything the engine needs to arm, passed by value once.
// Field keys are small integers so the payload stays compact and stable.
type Handshake struct {
	APILevel         int      `cbor:"1,keyasint"`
	OSVersion        string   `cbor:"2,keyasint"`
	ABIList          []string `cbor:"3,keyasint"`
	Manufacturer     string   `cbor:"4,keyasint"`
	Brand            string   `cbor:"5,keyasint"`
	Model            string   `cbor:"6,keyasint"`
	BuildFingerprint string   `cbor:"7,keyasint"`
	AppID            string   `cbor:"8,keyasint"`
	AppVersion       string   `cbor:"9,keyasint"`
	AppLibDir        string   `cbor:"10,keyasint"`
	LogDir           string   `cbor:"11,keyasint"`

	CrashEnabled                bool     `cbor:"20,keyasint"`
	CrashRethrow                bool     `cbor:"21,keyasint"`
	CrashLogcatSystemLines      int      `cbor:"22,keyasint"`
	CrashLogcatEventsLines      int      `cbor:"23,keyasint"`
	CrashLogcatMainLines        int      `cbor:"24,keyasint"`
	CrashDumpElfHash            bool     `cbor:"25,keyasint"`
	CrashDumpMap                bool     `cbor:"26,keyasint"`
	CrashDumpFds                bool     `cbor:"27,keyasint"`
	CrashDumpAllThreads         bool     `cbor:"28,keyasint"`
	CrashDumpAllThreadsCountMax int      `cbor:"29,keyasint"`
	CrashDumpAllThreadsAllow    []string `cbor:"30,keyasint"`

	ANREnabled           bool `cbor:"40,keyasint"`
	ANRRethrow           bool `cbor:"41,keyasint"`
	ANRLogCountMax       int  `cbor:"42,keyasint"`
	ANRLogcatSystemLines int  `cbor:"43,keyasint"`
	ANRLogcatEventsLines int  `cbor:"44,keyasint"`
	ANRLogcatMainLines   int  `cbor:"45,keyasint"`
	ANRDumpFds           bool `cbor:"46,keyasint"`
}

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): the same
// handshake always encodes to the same bytes.
var encMode cbor.EncMode

// decMode ignores unknown keys so older engines accept newer payloads.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("engine: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("engine: CBOR decoder initialization failed: " + err.Error())
	}
}

// NewHandshake assembles the handshake from a configuration and host
// information. anrEnabled is the effective ANR setting after the platform
// policy has been applied.
func NewHandshake(cfg *pkgconfig.Config, info host.Info, anrEnabled bool) Handshake {
	crash := cfg.Crash
	anr := cfg.ANR

	return Handshake{
		APILevel:         info.APILevel,
		OSVersion:        info.OSVersion,
		ABIList:          append([]string(nil), info.ABIs...),
		Manufacturer:     info.Manufacturer,
		Brand:            info.Brand,
		Model:            info.Model,
		BuildFingerprint: info.BuildFingerprint,
		AppID:            cfg.AppID,
		AppVersion:       cfg.AppVersion,
		AppLibDir:        info.NativeLibDir,
		LogDir:           cfg.LogDir,

		CrashEnabled:                crash.IsEnabled(),
		CrashRethrow:                crash.ShouldRethrow(),
		CrashLogcatSystemLines:      crash.GetLogcatSystemLines(),
		CrashLogcatEventsLines:      crash.GetLogcatEventsLines(),
		CrashLogcatMainLines:        crash.GetLogcatMainLines(),
		CrashDumpElfHash:            crash.ShouldDumpElfHash(),
		CrashDumpMap:                crash.ShouldDumpMap(),
		CrashDumpFds:                crash.ShouldDumpFds(),
		CrashDumpAllThreads:         crash.ShouldDumpAllThreads(),
		CrashDumpAllThreadsCountMax: crash.GetDumpAllThreadsCountMax(),
		CrashDumpAllThreadsAllow:    crashAllowList(crash),

		ANREnabled:           anrEnabled,
		ANRRethrow:           anr.ShouldRethrow(),
		ANRLogCountMax:       anr.GetLogCountMax(),
		ANRLogcatSystemLines: anr.GetLogcatSystemLines(),
		ANRLogcatEventsLines: anr.GetLogcatEventsLines(),
		ANRLogcatMainLines:   anr.GetLogcatMainLines(),
		ANRDumpFds:           anr.ShouldDumpFds(),
	}
}

func crashAllowList(c *pkgconfig.CrashConfig) []string {
	if c == nil {
		return nil
	}

	return append([]string(nil), c.DumpAllThreadsAllowList...)
}

// Marshal encodes h for Engine.Init.
func (h Handshake) Marshal() ([]byte, error) {
	data, err := encMode.Marshal(h)
	if err != nil {
		return nil, errors.Wrap(err, "encoding handshake")
	}

	return data, nil
}

// DecodeHandshake decodes a payload received by Engine.Init.
func DecodeHandshake(payload []byte) (Handshake, error) {
	var h Handshake
	if err := decMode.Unmarshal(payload, &h); err != nil {
		return Handshake{}, errors.Wrap(err, "decoding handshake")
	}

	return h, nil
}
