package rawgenome

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/carbocation/dnatraits"
	"github.com/carbocation/dnatraits/chrpos"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/pfx"
	"github.com/carbocation/vcfgo"
)

const vcfMagic = "##fileformat=VCF"

// errSkip marks lines that carry no genotype: comments, headers, internal
// ids and VCF sites without an rsid.
var errSkip = errors.New("skip")

// Reader yields one Row per usable line of an export.
type Reader struct {
	path    string
	export  *dnatraits.Export
	opts    Options
	scanner *bufio.Scanner
	vcf     *vcfgo.Reader
	sample  int
	format  Format
	line    int
	skipped int
	err     error
}

// Open opens a local or gs:// export, decompressing it if needed.
func Open(ctx context.Context, path string, opts Options) (*Reader, error) {
	export, err := dnatraits.Open(ctx, path, opts.Client)
	if err != nil {
		return nil, err
	}

	if opts.Delimiter == 0 {
		opts.Delimiter = export.Delimiter
	}

	r, err := NewReader(export, opts)
	if err != nil {
		export.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.path = path
	r.export = export

	if opts.Verbose {
		log.Printf("Reading %s (%s, %d bytes)\n", path, export.DataType, export.Size)
	}

	return r, nil
}

// NewReader reads an already-decompressed export.
func NewReader(rd io.Reader, opts Options) (*Reader, error) {
	r := &Reader{
		path: "<reader>",
		opts: opts,
	}

	br := bufio.NewReader(rd)
	if head, _ := br.Peek(len(vcfMagic)); string(head) == vcfMagic {
		vr, err := vcfgo.NewReader(br, false)
		if err != nil {
			return nil, pfx.Err(err)
		}

		r.sample, err = sampleIndex(vr.Header.SampleNames, opts.Sample)
		if err != nil {
			return nil, err
		}
		r.vcf = vr
		r.format = FormatVCF

		return r, nil
	}

	r.scanner = bufio.NewScanner(br)
	r.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return r, nil
}

func (r *Reader) Close() error {
	if r.export == nil {
		return nil
	}
	return r.export.Close()
}

func (r *Reader) Err() error {
	return r.err
}

// Format is FormatUnknown until the first data line has been read, except for
// VCFs.
func (r *Reader) Format() Format { return r.format }

// Skipped counts malformed rows passed over in non-strict mode.
func (r *Reader) Skipped() int { return r.skipped }

// Read returns the next row, or nil once the export is exhausted or an error
// occurs; check Err afterwards.
func (r *Reader) Read() *Row {
	for r.err == nil {
		var row *Row
		var err error

		if r.vcf != nil {
			row, err = r.readVariant()
		} else {
			row, err = r.readLine()
		}

		switch {
		case err == nil:
			return row
		case err == io.EOF:
			return nil
		case errors.Is(err, errSkip):
			continue
		case errors.Is(err, ErrMalformedRow) && !r.opts.Strict:
			r.skipped++
			if r.opts.Verbose {
				log.Printf("%s:%d: skipping: %v\n", r.path, r.line, err)
			}
			continue
		}

		r.err = fmt.Errorf("%s:%d: %w", r.path, r.line, err)
	}

	return nil
}

func (r *Reader) readLine() (*Row, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, pfx.Err(err)
		}
		return nil, io.EOF
	}
	r.line++

	text := strings.TrimRight(r.scanner.Text(), "\r")
	if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
		return nil, errSkip
	}

	cols := r.split(text)
	for i := range cols {
		cols[i] = strings.Trim(strings.TrimSpace(cols[i]), `"`)
	}

	if r.format == FormatUnknown {
		r.format = detectFormat(text, cols)
	}

	if isHeader(cols) {
		return nil, errSkip
	}

	return r.parseColumns(cols)
}

// split prefers the configured delimiter, then tabs, then commas, then runs
// of spaces.
func (r *Reader) split(text string) []string {
	for _, d := range []rune{r.opts.Delimiter, '\t', ','} {
		if d != 0 && strings.ContainsRune(text, d) {
			return strings.Split(text, string(d))
		}
	}
	return strings.Fields(text)
}

func detectFormat(text string, cols []string) Format {
	switch {
	case len(cols) >= Allele2Column+1:
		return FormatAncestry
	case strings.HasPrefix(text, `"`), strings.Count(text, ",") >= GenotypeColumn:
		return FormatFTDNA
	}
	return Format23andMe
}

func isHeader(cols []string) bool {
	switch strings.ToLower(cols[RSIDColumn]) {
	case "rsid", "snp", "name", "marker":
		return true
	}
	return false
}

// internalID is true for vendor-specific probe ids such as i3001754.
func internalID(id string) bool {
	if len(id) < 2 || id[0] != 'i' {
		return false
	}
	_, err := strconv.ParseUint(id[1:], 10, 64)
	return err == nil
}

func (r *Reader) parseColumns(cols []string) (*Row, error) {
	if len(cols) < GenotypeColumn+1 {
		return nil, fmt.Errorf("%w: %d columns", ErrMalformedRow, len(cols))
	}

	if internalID(cols[RSIDColumn]) {
		return nil, errSkip
	}

	rsid, err := genome.ParseRSID(cols[RSIDColumn])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	pos, err := strconv.ParseUint(cols[PositionColumn], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: position %q", ErrMalformedRow, cols[PositionColumn])
	}

	genotype := cols[GenotypeColumn]
	if r.format == FormatAncestry && len(cols) > Allele2Column {
		genotype = ancestryAllele(cols[GenotypeColumn]) + ancestryAllele(cols[Allele2Column])
	}

	return r.finish(Row{
		RSID:     rsid,
		Position: uint32(pos),
		Genotype: genotype,
	}, cols[ChromosomeColumn])
}

// ancestryAllele maps AncestryDNA's "0" no-call to "-".
func ancestryAllele(a string) string {
	if a == "0" {
		return string(genome.NoCall)
	}
	return a
}

// finish normalizes and validates the chromosome and genotype, and the
// position when an assembly is configured.
func (r *Reader) finish(row Row, chromosome string) (*Row, error) {
	chrom, err := chrpos.Normalize(chromosome)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	row.Chromosome = chrom

	row.Genotype = strings.ToUpper(row.Genotype)
	if _, err := genome.ParseGenotype(row.Genotype); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRow, row.RSID, err)
	}

	if r.opts.Assembly != "" {
		if err := chrpos.Validate(r.opts.Assembly, row.Chromosome, row.Position); err != nil {
			if errors.Is(err, chrpos.ErrUnknownAssembly) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRow, row.RSID, err)
		}
	}

	return &row, nil
}
