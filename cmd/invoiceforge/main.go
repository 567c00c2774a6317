package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/invoiceforge/invoiceforge/internal/config"
	"github.com/invoiceforge/invoiceforge/internal/domain/invoice"
	"github.com/invoiceforge/invoiceforge/internal/logger"
	"github.com/invoiceforge/invoiceforge/internal/pdf"

	"github.com/joho/godotenv"
)

func main() {
	inPath := flag.String("in", "", "invoice JSON file (construction params)")
	outPath := flag.String("out", "invoice.pdf", "output PDF path")
	fontSize := flag.Float64("font-size", pdf.DefaultFontSize, "base font size")
	genNumber := flag.Bool("gen-number", false, "generate an invoice number when the input omits one")
	flag.Parse()

	// Load .env if present, then the process configuration
	_ = godotenv.Load()
	cfg, err := config.Initialize()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if *inPath == "" {
		lg.Fatalf("missing -in: path to an invoice JSON file is required")
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		lg.Fatalf("failed to read %s: %v", *inPath, err)
	}

	var params invoice.Params
	if err := json.Unmarshal(data, &params); err != nil {
		lg.Fatalf("failed to parse %s: %v", *inPath, err)
	}

	if *genNumber && params.InvoiceNumber == "" {
		params.InvoiceNumber = invoice.GenerateInvoiceNumber()
	}

	inv, err := invoice.New(params)
	if err != nil {
		lg.Fatalf("invalid invoice: %v", err)
	}

	renderer := pdf.NewRenderer(
		pdf.WithFontSize(*fontSize),
		pdf.WithLogger(lg),
	)
	if err := renderer.RenderToFile(inv, *outPath); err != nil {
		lg.Fatalf("render failed: %v", err)
	}

	lg.Infow("invoice rendered",
		"invoice_number", inv.InvoiceNumber,
		"total", inv.Total().String(),
		"output", *outPath,
	)
}
