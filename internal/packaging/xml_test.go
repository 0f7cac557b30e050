package packaging

import (
	"strings"
	"testing"
)

func TestBuildBoxExportXMLStructure(t *testing.T) {
	packs := []PackContent{
		{BoxBarcode: "BOX-001", ItemBarcodes: []string{"ITEM-A", "ITEM-B"}},
		{BoxBarcode: "BOX-002", ItemBarcodes: []string{"ITEM-C"}},
	}
	doc := BuildBoxExportXML("123456789", packs)

	if !strings.HasPrefix(doc, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<unit_pack>\n") {
		t.Errorf("unexpected document start:\n%s", doc)
	}
	if !strings.HasSuffix(doc, "</unit_pack>\n") {
		t.Errorf("unexpected document end:\n%s", doc)
	}
	if !strings.Contains(doc, "<LP_info LP_TIN=\"123456789\" />") {
		t.Errorf("missing LP_info element:\n%s", doc)
	}
	if got := strings.Count(doc, "<pack_content>"); got != 2 {
		t.Errorf("pack_content count = %d, want 2", got)
	}
	if got := strings.Count(doc, "<cis>"); got != 3 {
		t.Errorf("cis count = %d, want 3", got)
	}
	if !strings.Contains(doc, "<pack_code><![CDATA[BOX-001]]></pack_code>") {
		t.Errorf("missing pack_code for BOX-001:\n%s", doc)
	}
	if !strings.Contains(doc, "<cis><![CDATA[ITEM-C]]></cis>") {
		t.Errorf("missing cis for ITEM-C:\n%s", doc)
	}
}

func TestBuildBoxExportXMLCleansBarcodes(t *testing.T) {
	packs := []PackContent{
		{BoxBarcode: "BOX-DIRTY\x1d93XYZ", ItemBarcodes: []string{"ITEM-DIRTY\x1dTAIL"}},
	}
	doc := BuildBoxExportXML("1", packs)

	if strings.Contains(doc, "\x1d") {
		t.Error("separator byte leaked into document")
	}
	if !strings.Contains(doc, "<pack_code><![CDATA[BOX-DIRTY]]></pack_code>") {
		t.Errorf("box barcode not cleaned:\n%s", doc)
	}
	if !strings.Contains(doc, "<cis><![CDATA[ITEM-DIRTY]]></cis>") {
		t.Errorf("item barcode not cleaned:\n%s", doc)
	}
}

func TestBuildPalletExportXMLStructure(t *testing.T) {
	units := []AggregationUnit{
		{PalletBarcode: "PAL-001", BoxBarcodes: []string{"BOX-001", "BOX-002"}},
	}
	doc := BuildPalletExportXML("987654321", units)

	if !strings.Contains(doc, "<aggregation_document>") || !strings.Contains(doc, "</aggregation_document>") {
		t.Errorf("missing aggregation_document root:\n%s", doc)
	}
	if !strings.Contains(doc, "<sscc><![CDATA[PAL-001]]></sscc>") {
		t.Errorf("missing sscc:\n%s", doc)
	}
	if got := strings.Count(doc, "<unit_pack><![CDATA["); got != 2 {
		t.Errorf("unit_pack entry count = %d, want 2", got)
	}
}

func TestBuildExportXMLEmptyBody(t *testing.T) {
	doc := BuildBoxExportXML("1", nil)
	if strings.Contains(doc, "<pack_content>") {
		t.Errorf("empty export should carry no pack_content:\n%s", doc)
	}
	if !strings.Contains(doc, "<Document>") {
		t.Errorf("envelope missing:\n%s", doc)
	}
}

func TestBuildExportXMLEscapesTin(t *testing.T) {
	doc := BuildBoxExportXML("12<34&56", nil)
	if !strings.Contains(doc, "LP_TIN=\"12&lt;34&amp;56\"") {
		t.Errorf("TIN not escaped:\n%s", doc)
	}
}
