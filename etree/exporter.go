// Package etree provides an XML export of collections using
// github.com/beevik/etree.
package etree

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/rara"
)

// Ensure XMLExporter implements rara.Exporter at compile time.
var _ rara.Exporter = (*XMLExporter)(nil)

// XMLExporter writes a collection as an indented XML document:
//
//	<collection size="2">
//	  <record key="0">
//	    <url>...</url>
//	    <entity>rarity</entity>
//	    <id>42</id>
//	    <text>...</text>
//	    <attribute name="domain">morphology</attribute>
//	  </record>
//	</collection>
type XMLExporter struct {
	indent int
}

// NewXMLExporter creates a new XMLExporter indenting by two spaces.
func NewXMLExporter() *XMLExporter {
	return &XMLExporter{indent: 2}
}

// Export writes c to w.
func (e *XMLExporter) Export(w io.Writer, c *rara.Collection) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("collection")
	root.CreateAttr("size", strconv.Itoa(c.Size()))

	for _, key := range c.Keys() {
		r, _ := c.Get(key)
		el := root.CreateElement("record")
		el.CreateAttr("key", strconv.Itoa(key))
		el.CreateElement(rara.KeyURL).SetText(r.URL)
		el.CreateElement(rara.KeyEntity).SetText(r.Entity)
		el.CreateElement(rara.KeyID).SetText(strconv.Itoa(r.ID))
		el.CreateElement(rara.KeyText).SetText(r.Text)
		for _, name := range r.Attrs.Keys() {
			value, _ := r.Attrs.Get(name)
			attr := el.CreateElement("attribute")
			attr.CreateAttr("name", name)
			attr.SetText(value)
		}
	}

	doc.Indent(e.indent)
	_, err := doc.WriteTo(w)
	return err
}
