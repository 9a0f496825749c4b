// SlabQuote prices a panel cut list from the command line.
//
// Build:
//   go build -o slabquote ./cmd/slabquote
//
// Example:
//   slabquote --input cuts.csv --material MDF18 --finish "lacquer:RAL 9010:satin" --quote quote.pdf
//   slabquote --layers PLY18,MDF18,PLY18 --resell-offcuts

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/piwi3910/SlabQuote/internal/color"
	"github.com/piwi3910/SlabQuote/internal/config"
	"github.com/piwi3910/SlabQuote/internal/engine"
	"github.com/piwi3910/SlabQuote/internal/export"
	"github.com/piwi3910/SlabQuote/internal/importer"
	"github.com/piwi3910/SlabQuote/internal/model"
)

type options struct {
	input       string
	reference   string
	material    string
	finish      string
	faces       int
	configPath  string
	catalogPath string
	quotePath   string
	labelsPath  string
	colorHex    string
	compare     bool
	saveConfig  bool
	backupPath  string
	restorePath string
	panels      bool
	kerf        float64
	layers      string
	oversize    float64
	resell      bool
	verbose     bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("slabquote", flag.ContinueOnError)
	fs.StringVarP(&opts.input, "input", "i", "", "cut list to price (.csv, .xlsx or .dxf)")
	fs.StringVarP(&opts.reference, "reference", "r", "", "order reference")
	fs.StringVarP(&opts.material, "material", "m", "", "catalog code for rows without a material column")
	fs.StringVar(&opts.finish, "finish", "", `finish for every line: "lacquer:<color>:<gloss>" or "varnish:<gloss>[:<tint>]"`)
	fs.IntVar(&opts.faces, "faces", 1, "finished faces per piece (0-2)")
	fs.StringVarP(&opts.configPath, "config", "c", config.DefaultPricingPath(), "pricing config (TOML)")
	fs.StringVar(&opts.catalogPath, "catalog", config.DefaultCatalogPath(), "material catalog (JSON)")
	fs.StringVar(&opts.quotePath, "quote", "", "write a PDF quote to this path")
	fs.StringVar(&opts.labelsPath, "labels", "", "write a PDF label sheet to this path")
	fs.StringVar(&opts.colorHex, "color", "", "match a #RRGGBB color against RAL and manufacturer palettes")
	fs.BoolVar(&opts.compare, "compare", false, "print a finish price comparison for the first line")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "write the effective pricing config back to --config")
	fs.StringVar(&opts.backupPath, "backup", "", "write pricing and catalog to a backup file")
	fs.StringVar(&opts.restorePath, "restore", "", "replace pricing and catalog with a backup file")
	fs.BoolVar(&opts.panels, "panels", false, "print the stock panels to pull per material")
	fs.Float64Var(&opts.kerf, "kerf", 3, "saw kerf in mm added to each piece side for --panels")
	fs.StringVar(&opts.layers, "layers", "", "compose a layer stack from catalog codes, e.g. PLY18,MDF18,PLY18")
	fs.Float64Var(&opts.oversize, "oversize", 0, "customer glues the stack; oversize allowance in mm on delivery")
	fs.BoolVar(&opts.resell, "resell-offcuts", false, "add the stack's offcuts to the catalog as resale stock")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.input == "" && opts.layers == "" && opts.colorHex == "" && !opts.saveConfig && opts.backupPath == "" && opts.restorePath == "" {
		return opts, fmt.Errorf("nothing to do: pass --input, --layers, --color, --backup, --restore or --save-config")
	}
	if opts.resell && opts.layers == "" {
		return opts, fmt.Errorf("--resell-offcuts needs --layers")
	}
	return opts, nil
}

// parseFinish reads the --finish flag value.
func parseFinish(s string) (model.Finish, error) {
	if strings.TrimSpace(s) == "" {
		return model.NoFinish{}, nil
	}
	parts := strings.Split(s, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch strings.ToLower(parts[0]) {
	case "none":
		return model.NoFinish{}, nil
	case "lacquer":
		if len(parts) != 3 {
			return nil, fmt.Errorf("lacquer finish must be lacquer:<color>:<gloss>, got %q", s)
		}
		return model.Lacquer{ColorRef: parts[1], GlossLevel: model.GlossLevel(strings.ToLower(parts[2]))}, nil
	case "varnish":
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("varnish finish must be varnish:<gloss>[:<tint>], got %q", s)
		}
		v := model.Varnish{GlossLevel: model.GlossLevel(strings.ToLower(parts[1]))}
		if len(parts) == 3 {
			v.TintMode = true
			v.Tint = parts[2]
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown finish %q", parts[0])
	}
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	config.LoadDotEnv()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(opts, os.Stdout); err != nil {
		log.WithError(err).Error("slabquote failed")
		os.Exit(1)
	}
}

func run(opts options, w io.Writer) error {
	if opts.restorePath != "" {
		b, err := config.ReadBackup(opts.restorePath)
		if err != nil {
			return err
		}
		if err := config.RestoreBackup(b, opts.configPath, opts.catalogPath); err != nil {
			return err
		}
	}

	pricing, err := config.LoadPricing(opts.configPath)
	if err != nil {
		return err
	}
	if opts.saveConfig {
		if err := config.SavePricing(opts.configPath, pricing); err != nil {
			return err
		}
	}

	if opts.backupPath != "" {
		cat, err := config.LoadCatalog(opts.catalogPath)
		if err != nil {
			return err
		}
		if err := config.WriteBackup(opts.backupPath, pricing, cat); err != nil {
			return err
		}
		fmt.Fprintf(w, "Backup written to %s\n", opts.backupPath)
	}

	if opts.colorHex != "" {
		if err := printColorMatch(w, opts.colorHex); err != nil {
			return err
		}
	}
	if opts.input == "" && opts.layers == "" {
		return nil
	}

	catalog, err := config.LoadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}
	eng := engine.New(pricing)

	if opts.input != "" {
		if err := priceCutList(opts, eng, catalog, w); err != nil {
			return err
		}
	}
	if opts.layers != "" {
		return composeLayers(opts, eng, catalog, w)
	}
	return nil
}

func priceCutList(opts options, eng *engine.Engine, catalog model.Catalog, w io.Writer) error {
	finish, err := parseFinish(opts.finish)
	if err != nil {
		return err
	}

	res := importer.ImportFile(opts.input)
	for _, msg := range res.Warnings {
		log.Warn(msg)
	}
	for _, msg := range res.Errors {
		log.Error(msg)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("no usable rows in %s", opts.input)
	}

	lines, warnings := importer.ToLines(res.Records, catalog, opts.material)
	for _, msg := range warnings {
		log.Warn(msg)
	}
	for i := range lines {
		lines[i].Finish = finish
		lines[i].Faces = opts.faces
	}

	order := eng.Recompute(model.Order{Reference: opts.reference, Lines: lines})
	log.WithFields(log.Fields{
		"lines": len(order.Lines),
		"valid": order.Valid,
	}).Info("order priced")

	printOrder(w, order, eng.Pricing.Currency)

	if opts.panels {
		printPanels(w, eng.EstimatePanels(order, opts.kerf))
	}
	if opts.compare {
		printComparison(w, eng, order.Lines[0], eng.Pricing.Currency)
	}
	if opts.quotePath != "" {
		if err := export.ExportQuote(opts.quotePath, order, eng.Pricing); err != nil {
			return fmt.Errorf("failed to write quote: %w", err)
		}
		log.WithField("path", opts.quotePath).Info("quote written")
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, order); err != nil {
			return fmt.Errorf("failed to write labels: %w", err)
		}
		log.WithField("path", opts.labelsPath).Info("labels written")
	}
	return nil
}

// buildStack turns a comma-separated list of catalog codes into a layer
// stack, outer faces first and last.
func buildStack(eng *engine.Engine, catalog model.Catalog, codes string, oversize float64) (model.LayerStack, error) {
	var parts []string
	for _, c := range strings.Split(codes, ",") {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	min, max := eng.Pricing.LayerBounds()
	if len(parts) < min || len(parts) > max {
		return model.LayerStack{}, fmt.Errorf("--layers needs %d to %d materials, got %d", min, max, len(parts))
	}

	s := model.LayerStack{Glue: model.SupplierGlue{}}
	if oversize > 0 {
		s.Glue = model.CustomerGlue{Oversize: oversize}
	}
	for i, code := range parts {
		m := catalog.FindMaterialByCode(code)
		if m == nil {
			return model.LayerStack{}, fmt.Errorf("unknown material %q in --layers", code)
		}
		role := model.RoleCore
		switch i {
		case 0:
			role = model.RoleFaceA
		case len(parts) - 1:
			role = model.RoleFaceB
		}
		s = eng.AddLayer(s, role).WithMaterial(i, m)
	}
	return s, nil
}

func composeLayers(opts options, eng *engine.Engine, catalog model.Catalog, w io.Writer) error {
	s, err := buildStack(eng, catalog, opts.layers, opts.oversize)
	if err != nil {
		return err
	}
	c := eng.Compose(s)
	cur := eng.Pricing.Currency

	fmt.Fprintf(w, "\nLayer stack (%d layers):\n", len(s.Layers))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tROLE\tMATERIAL\tL x W x T")
	for i, l := range s.Layers {
		m := l.Material
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f x %.0f x %.1f\n", i+1, l.Role, m.Code, m.Length, m.Width, m.Thickness)
	}
	tw.Flush()

	fmt.Fprintf(w, "Final panel:     %.0f x %.0f x %.1f mm\n", c.FinalLength, c.FinalWidth, c.TotalThickness)
	fmt.Fprintf(w, "Delivery size:   %.0f x %.0f mm\n", c.DeliveryLength, c.DeliveryWidth)
	fmt.Fprintf(w, "Material:        %10.2f %s\n", c.MaterialCost, cur)
	fmt.Fprintf(w, "Gluing:          %10.2f %s (%d joints)\n", c.GluingCost, cur, c.Joints)
	fmt.Fprintf(w, "Stack total:     %10.2f %s\n", c.TotalCost, cur)

	offcuts := eng.EstimateOffcuts(s)
	for _, o := range offcuts {
		fmt.Fprintf(w, "Offcut layer %d (%s): %.3f m², value %.2f %s\n", o.LayerIndex+1, o.Material.Code, o.Area, o.Value, cur)
	}
	fmt.Fprintf(w, "Offcut value:    %10.2f %s\n", eng.OffcutValue(s), cur)

	if !opts.resell || len(offcuts) == 0 {
		return nil
	}
	updated := config.AddOffcuts(catalog, offcuts)
	if err := config.SaveCatalog(opts.catalogPath, updated); err != nil {
		return err
	}
	fmt.Fprintf(w, "Added %d offcut material(s) to %s\n", len(updated.Materials)-len(catalog.Materials), opts.catalogPath)
	return nil
}

func printPanels(w io.Writer, est []model.PanelEstimate) {
	if len(est) == 0 {
		fmt.Fprintln(w, "\nNo area-priced materials to estimate.")
		return
	}
	fmt.Fprintln(w, "\nPanels to pull:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tPARTS m²\tPANEL m²\tEXACT\tMIN\tWITH WASTE")
	for _, e := range est {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.2f\t%d\t%d\n",
			e.Material.Code, e.TotalPartArea, e.PanelArea, e.PanelsNeededExact, e.PanelsNeededMin, e.PanelsWithWaste)
	}
	tw.Flush()
}

func printOrder(w io.Writer, o model.Order, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tREFERENCE\tMATERIAL\tL x W x T\tQTY\tFINISH\tEDGES\tUNIT\tLINE")
	for i, l := range o.Lines {
		material := "-"
		if l.Material != nil {
			material = l.Material.Code
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f x %.0f x %.1f\t%d\t%s\t%s\t%.2f\t%.2f\n",
			i+1, l.Reference, material, l.Dims.Length, l.Dims.Width, l.Dims.Thickness,
			l.Quantity, model.DescribeFinish(l.FinishOrNone()), l.Edges,
			l.Computed.UnitPriceExclTax, l.Computed.LinePriceExclTax)
	}
	tw.Flush()

	t := o.Totals
	fmt.Fprintf(w, "\nPieces: %d   Edge banding: %.2f m\n", t.PieceCount, t.EdgeMeters)
	fmt.Fprintf(w, "Supply:          %10.2f %s\n", t.SupplySubtotal, currency)
	fmt.Fprintf(w, "Services:        %10.2f %s\n", t.ServiceSubtotal, currency)
	fmt.Fprintf(w, "Total excl. tax: %10.2f %s\n", t.TotalExclTax, currency)
	fmt.Fprintf(w, "Tax:             %10.2f %s\n", t.Tax, currency)
	fmt.Fprintf(w, "Total incl. tax: %10.2f %s\n", t.TotalInclTax, currency)

	if o.Valid {
		fmt.Fprintln(w, "\nOrder is valid.")
		return
	}
	fmt.Fprintln(w, "\nOrder cannot be submitted:")
	for _, e := range o.Errors {
		if e.LineIndex >= 0 {
			fmt.Fprintf(w, "  line %d: %s\n", e.LineIndex+1, e.Message)
		} else {
			fmt.Fprintf(w, "  %s\n", e.Message)
		}
	}
}

func printComparison(w io.Writer, eng *engine.Engine, l model.CuttingLine, currency string) {
	fmt.Fprintf(w, "\nFinish comparison for line 1 (%s):\n", l.Reference)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISH\tFINISH COST\tLINE\tDELTA")
	for _, c := range eng.CompareFinishes(l, eng.BuildFinishScenarios(l)) {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f %s\t%+.2f\n", c.Scenario.Name, c.FinishCost, c.LinePriceExclTax, currency, c.Delta)
	}
	tw.Flush()
}

func printColorMatch(w io.Writer, hex string) error {
	m, err := color.NewMatcher()
	if err != nil {
		return fmt.Errorf("failed to load palettes: %w", err)
	}
	s := m.Sample(hex)
	fmt.Fprintf(w, "Color %s: nearest %s (distance %.1f)\n", s.Hex, s.Nearest.Reference.Label(), s.Nearest.Distance)

	byMfr := m.NearestByManufacturer(s.RGB)
	for _, id := range m.Manufacturers() {
		match, ok := byMfr[id]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-10s %s (distance %.1f)\n", id, match.Reference.Label(), match.Distance)
	}
	return nil
}
