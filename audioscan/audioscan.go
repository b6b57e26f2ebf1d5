// Package audioscan decodes audio sources and extracts the metadata an
// audio clip needs: duration, channel layout and a peak envelope for
// waveform display. Results are cached in a JSON side-car next to the
// source, keyed by a content hash, so repeated imports of the same file
// skip the decode.
package audioscan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/viterin/vek/vek32"

	"github.com/jkataja/tahti"
)

// DefaultBucketSize is how many frames one peak value summarizes.
const DefaultBucketSize = 512

const cacheSchemaVersion = 1

// Scanner analyzes WAV sources. The zero value is ready to use; set
// SkipCache to force a fresh decode.
type Scanner struct {
	SkipCache bool
}

type cacheFile struct {
	SchemaVersion int                 `json:"schema_version"`
	SourceHash    string              `json:"source_hash"`
	Analysis      tahti.AudioAnalysis `json:"analysis"`
}

// Analyze decodes the WAV file at path and summarizes it into
// bucketSize-frame peaks. A valid cached result is returned without
// decoding.
func (s *Scanner) Analyze(path string, bucketSize int) (tahti.AudioAnalysis, error) {
	if bucketSize < 1 {
		bucketSize = DefaultBucketSize
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tahti.AudioAnalysis{}, fmt.Errorf("reading audio source: %w", err)
	}
	sum := sha256.Sum256(data)
	sourceHash := hex.EncodeToString(sum[:])
	cachePath := path + ".peaks.json"

	if !s.SkipCache {
		if cached, ok := readCache(cachePath, sourceHash, bucketSize); ok {
			return cached, nil
		}
	}

	mono, sampleRate, channels, err := decodeWavMono(path)
	if err != nil {
		return tahti.AudioAnalysis{}, err
	}
	analysis := tahti.AudioAnalysis{
		SourcePath:      path,
		SampleRate:      sampleRate,
		Channels:        channels,
		TotalFrames:     len(mono),
		DurationSeconds: float64(len(mono)) / float64(sampleRate),
		BucketSize:      bucketSize,
		Peaks:           peaks(mono, bucketSize),
		CachePath:       cachePath,
	}
	writeCache(cachePath, sourceHash, analysis)
	return analysis, nil
}

// peaks reduces mono samples to one absolute peak per bucket.
func peaks(mono []float32, bucketSize int) []float32 {
	if len(mono) == 0 {
		return nil
	}
	out := make([]float32, 0, (len(mono)+bucketSize-1)/bucketSize)
	scratch := make([]float32, bucketSize)
	for start := 0; start < len(mono); start += bucketSize {
		end := min(start+bucketSize, len(mono))
		bucket := scratch[:end-start]
		vek32.Abs_Into(bucket, mono[start:end])
		out = append(out, vek32.Max(bucket))
	}
	return out
}

// decodeWavMono reads a PCM or float WAV file and downmixes it to mono
// by averaging channels. Samples come back normalized to [-1, 1].
func decodeWavMono(path string) ([]float32, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("opening audio source: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, 0, tahti.NewInvalidArgument(fmt.Sprintf("not a valid wav file: %s", path))
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, 0, 0, fmt.Errorf("seeking pcm data: %w", err)
	}
	format := decoder.Format()
	bitDepth := int(decoder.SampleBitDepth())
	if bitDepth == 0 {
		return nil, 0, 0, tahti.NewInvalidArgument(fmt.Sprintf("unknown bit depth: %s", path))
	}
	buf := &audio.IntBuffer{Format: format, SourceBitDepth: bitDepth}
	bytesPerSample := (bitDepth-1)/8 + 1
	buf.Data = make([]int, int(decoder.PCMLen())/bytesPerSample)
	if _, err := decoder.PCMBuffer(buf); err != nil {
		return nil, 0, 0, fmt.Errorf("decoding pcm data: %w", err)
	}

	channels := format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := float32(math.Pow(2, float64(bitDepth-1)))
	frames := len(buf.Data) / channels
	mono := make([]float32, frames)
	for i := range frames {
		var acc float32
		for c := range channels {
			acc += float32(buf.Data[i*channels+c]) / scale
		}
		mono[i] = acc / float32(channels)
	}
	return mono, format.SampleRate, channels, nil
}

func readCache(path, sourceHash string, bucketSize int) (tahti.AudioAnalysis, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tahti.AudioAnalysis{}, false
	}
	var c cacheFile
	if err := json.Unmarshal(data, &c); err != nil {
		return tahti.AudioAnalysis{}, false
	}
	if c.SchemaVersion != cacheSchemaVersion || c.SourceHash != sourceHash || c.Analysis.BucketSize != bucketSize {
		return tahti.AudioAnalysis{}, false
	}
	return c.Analysis, true
}

func writeCache(path, sourceHash string, analysis tahti.AudioAnalysis) {
	b, err := json.Marshal(cacheFile{
		SchemaVersion: cacheSchemaVersion,
		SourceHash:    sourceHash,
		Analysis:      analysis,
	})
	if err != nil {
		return
	}
	// cache misses are recoverable, never fail the import over one
	os.WriteFile(path, b, 0o644)
}
