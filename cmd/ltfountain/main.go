// Command ltfountain is a small CLI driver around the fountain package: it
// wraps a file in the chunking package's block splitter, feeds blocks
// through an Encoder or Decoder, and optionally layers a Reed-Solomon
// outer parity pass via internal/outerfec.
//
// Grounded on doismellburning-samoyed's direct-pflag-in-main style
// (src/appserver.go): flags are declared and parsed straight in main, with
// no subcommand framework.
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/fathompoint/ltfountain"
	"github.com/fathompoint/ltfountain/internal/chunking"
	"github.com/fathompoint/ltfountain/internal/outerfec"
)

func main() {
	var (
		mode          = pflag.StringP("mode", "m", "", "Operation: encode or decode.")
		inputPath     = pflag.StringP("input", "i", "", "Input file path.")
		outputPath    = pflag.StringP("output", "o", "", "Output file path.")
		packetSize    = pflag.IntP("packet-size", "p", 65536, "Bytes per block.")
		redundancy    = pflag.Float64P("redundancy", "r", 2.0, "Encode: drops produced per source block.")
		systematic    = pflag.BoolP("systematic", "s", false, "Prefix the drop stream with identity copies of each source block.")
		robust        = pflag.BoolP("robust", "b", true, "Use the Robust Soliton distribution instead of Ideal.")
		parityShards  = pflag.IntP("parity-shards", "x", 0, "Outer Reed-Solomon parity shards (0 disables).")
		verbose       = pflag.BoolP("verbose", "v", false, "Enable debug logging.")
		help          = pflag.Bool("help", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - LT rateless erasure codec\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s --mode encode|decode --input FILE --output FILE [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build logger: %s\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer logger.Sync() //nolint:errcheck

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "--input and --output are required")
		pflag.Usage()
		os.Exit(1)
	}

	cfg := fountain.DefaultConfig()
	cfg.PacketSize = *packetSize
	cfg.Redundancy = *redundancy
	cfg.Systematic = *systematic
	cfg.OuterParityShards = *parityShards
	cfg.Logger = logger
	if *robust {
		cfg.Distribution = fountain.DistributionRobust
	} else {
		cfg.Distribution = fountain.DistributionIdeal
	}

	var err error
	switch *mode {
	case "encode":
		err = runEncode(cfg, *inputPath, *outputPath)
	case "decode":
		err = runDecode(cfg, *inputPath, *outputPath)
	default:
		fmt.Fprintf(os.Stderr, "--mode must be encode or decode, got %q\n", *mode)
		pflag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", *mode, err)
		os.Exit(1)
	}
}

// runEncode reads the whole input file, splits it into blocks, optionally
// computes Reed-Solomon parity blocks, and writes a stream of
// (totalLength, k, n, parityShards, symbols..., parity blocks...) to the
// output file. This is a CLI-local wire format, not part of the fountain
// package's contract.
func runEncode(cfg fountain.Config, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	k := chunking.NumBlocks(len(data), cfg.PacketSize)
	blocks := chunking.Split(data, k, cfg.PacketSize)
	n := cfg.NumDrops(k)

	enc, err := fountain.NewEncoder(cfg, blocks, n)
	if err != nil {
		return fmt.Errorf("constructing encoder: %w", err)
	}

	var parity [][]byte
	if cfg.OuterParityShards > 0 {
		prot, err := outerfec.New(k, cfg.OuterParityShards)
		if err != nil {
			return fmt.Errorf("constructing outer parity: %w", err)
		}
		parity, err = prot.Encode(blocks)
		if err != nil {
			return fmt.Errorf("computing outer parity: %w", err)
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	if err := writeHeader(out, uint64(len(data)), uint32(k), uint32(n), uint32(cfg.OuterParityShards)); err != nil {
		return err
	}

	for {
		sym, ok := enc.Next()
		if !ok {
			break
		}
		if err := writeSymbol(out, sym); err != nil {
			return fmt.Errorf("writing symbol: %w", err)
		}
	}
	for _, p := range parity {
		if err := writeBlock(out, p); err != nil {
			return fmt.Errorf("writing parity block: %w", err)
		}
	}

	logger := cfg.Logger
	logger.Info("encode complete", zap.Int("k", k), zap.Int("n", n), zap.Int("parity_shards", len(parity)))
	return nil
}

// runDecode is the encode counterpart: it reads the header, every symbol,
// and any parity blocks, runs the peeling Decoder, and falls back to the
// outer Reed-Solomon pass if the decoder stalls with blocks still missing.
func runDecode(cfg fountain.Config, inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	totalLength, k, n, parityShards, err := readHeader(in)
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	dec, err := fountain.NewDecoder(cfg, int(k))
	if err != nil {
		return fmt.Errorf("constructing decoder: %w", err)
	}

	symbols := make([]fountain.Symbol, 0, n)
	for i := uint32(0); i < n; i++ {
		sym, err := readSymbol(in, cfg.PacketSize)
		if err != nil {
			return fmt.Errorf("reading symbol %d: %w", i, err)
		}
		symbols = append(symbols, sym)
	}

	parity := make([][]byte, parityShards)
	for i := range parity {
		b, err := readBlock(in, cfg.PacketSize)
		if err != nil {
			return fmt.Errorf("reading parity block %d: %w", i, err)
		}
		parity[i] = b
	}

	blocks, solved, err := dec.Decode(symbols)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	logger := cfg.Logger
	logger.Info("decode pass", zap.Int("solved", solved), zap.Int("k", int(k)), zap.Int("redundant", dec.Stats().Redundant))

	if solved < int(k) && len(parity) > 0 {
		shards := make([][]byte, int(k)+len(parity))
		copy(shards, blocks)
		copy(shards[k:], parity)
		prot, err := outerfec.New(int(k), len(parity))
		if err != nil {
			return fmt.Errorf("constructing outer parity for recovery: %w", err)
		}
		recovered, err := prot.Reconstruct(shards)
		if err != nil {
			return fmt.Errorf("outer parity could not recover remaining blocks: %w", err)
		}
		blocks = recovered
		logger.Info("recovered remaining blocks via outer parity")
	} else if solved < int(k) {
		return fmt.Errorf("decoder stalled at %d/%d blocks and no outer parity is available", solved, k)
	}

	if err := os.WriteFile(outputPath, chunking.Join(blocks, int(totalLength)), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func writeHeader(out *os.File, totalLength uint64, k, n, parityShards uint32) error {
	var hdr [20]byte
	binary.LittleEndian.PutUint64(hdr[0:8], totalLength)
	binary.LittleEndian.PutUint32(hdr[8:12], k)
	binary.LittleEndian.PutUint32(hdr[12:16], n)
	binary.LittleEndian.PutUint32(hdr[16:20], parityShards)
	_, err := out.Write(hdr[:])
	return err
}

func readHeader(in *os.File) (totalLength uint64, k, n, parityShards uint32, err error) {
	var hdr [20]byte
	if _, err = io.ReadFull(in, hdr[:]); err != nil {
		return
	}
	totalLength = binary.LittleEndian.Uint64(hdr[0:8])
	k = binary.LittleEndian.Uint32(hdr[8:12])
	n = binary.LittleEndian.Uint32(hdr[12:16])
	parityShards = binary.LittleEndian.Uint32(hdr[16:20])
	return
}

func writeSymbol(out *os.File, sym fountain.Symbol) error {
	var hdr [12]byte
	binary.LittleEndian.PutUint64(hdr[0:8], sym.Index)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(sym.Degree))
	if _, err := out.Write(hdr[:]); err != nil {
		return err
	}
	return writeBlock(out, sym.Data)
}

func readSymbol(in *os.File, packetSize int) (fountain.Symbol, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(in, hdr[:]); err != nil {
		return fountain.Symbol{}, err
	}
	data, err := readBlock(in, packetSize)
	if err != nil {
		return fountain.Symbol{}, err
	}
	return fountain.Symbol{
		Index:  binary.LittleEndian.Uint64(hdr[0:8]),
		Degree: int(binary.LittleEndian.Uint32(hdr[8:12])),
		Data:   data,
	}, nil
}

func writeBlock(out *os.File, block []byte) error {
	_, err := out.Write(block)
	return err
}

func readBlock(in *os.File, packetSize int) ([]byte, error) {
	block := make([]byte, packetSize)
	if _, err := io.ReadFull(in, block); err != nil {
		return nil, err
	}
	return block, nil
}
