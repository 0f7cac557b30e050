package packaging

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// PackContent is one exported box with the items packed inside it
type PackContent struct {
	BoxBarcode   string
	ItemBarcodes []string
}

// AggregationUnit is one exported pallet with the boxes placed on it
type AggregationUnit struct {
	PalletBarcode string
	BoxBarcodes   []string
}

// BuildBoxExportXML renders the unit_pack document for a box export.
// Barcodes are cleaned of GS1 suffixes and embedded as CDATA.
func BuildBoxExportXML(lpTin string, packs []PackContent) string {
	var b strings.Builder
	writeDocumentHeader(&b, "unit_pack", lpTin)

	for _, pack := range packs {
		b.WriteString("    <pack_content>\n")
		fmt.Fprintf(&b, "      <pack_code><![CDATA[%s]]></pack_code>\n", CleanBarcode(pack.BoxBarcode))
		for _, item := range pack.ItemBarcodes {
			fmt.Fprintf(&b, "      <cis><![CDATA[%s]]></cis>\n", CleanBarcode(item))
		}
		b.WriteString("    </pack_content>\n")
	}

	writeDocumentFooter(&b, "unit_pack")
	return b.String()
}

// BuildPalletExportXML renders the aggregation_document for a pallet export
func BuildPalletExportXML(lpTin string, units []AggregationUnit) string {
	var b strings.Builder
	writeDocumentHeader(&b, "aggregation_document", lpTin)

	for _, unit := range units {
		b.WriteString("    <aggregation_unit>\n")
		fmt.Fprintf(&b, "      <sscc><![CDATA[%s]]></sscc>\n", CleanBarcode(unit.PalletBarcode))
		for _, box := range unit.BoxBarcodes {
			fmt.Fprintf(&b, "      <unit_pack><![CDATA[%s]]></unit_pack>\n", CleanBarcode(box))
		}
		b.WriteString("    </aggregation_unit>\n")
	}

	writeDocumentFooter(&b, "aggregation_document")
	return b.String()
}

func writeDocumentHeader(b *strings.Builder, root, lpTin string) {
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	fmt.Fprintf(b, "<%s>\n", root)
	b.WriteString("  <Document>\n")
	b.WriteString("    <organisation>\n")
	b.WriteString("      <id_info>\n")
	fmt.Fprintf(b, "        <LP_info LP_TIN=\"%s\" />\n", escapeAttr(lpTin))
	b.WriteString("      </id_info>\n")
	b.WriteString("    </organisation>\n")
}

func writeDocumentFooter(b *strings.Builder, root string) {
	b.WriteString("  </Document>\n")
	fmt.Fprintf(b, "</%s>\n", root)
}

func escapeAttr(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
