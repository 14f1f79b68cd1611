package formatter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/record-translator/internal/config"
	"github.com/ginjaninja78/record-translator/internal/types"
)

// =============================================================================
// XML STRUCTURE
// =============================================================================
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <records>                          <!-- xml_root_element -->
//     <record n="1">                   <!-- xml_record_element, 1-indexed -->
//       <name>Johnson, John</name>
//       <address>Voorstraat 32</address>
//       <postcode>3122gg</postcode>
//       <phone>020 3849381</phone>
//       <creditLimit>10000.00</creditLimit>
//       <birthday>01/01/1987</birthday>
//     </record>
//   </records>
//
// Empty fields are written as self-closing elements.

// indexAttribute numbers each record element.
const indexAttribute = "n"

// elementName matches the XML names accepted for configurable elements.
var elementName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// XMLElement is a generic element: either a text value or children.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

// FormatXML renders records as an XML document.
//
// PARAMETERS:
//   - records: The records to serialize.
//   - settings: Supplies the root and record element names and the indent.
//
// RETURNS:
//   - The XML document, starting with an XML declaration.
//   - An error if a configured element name is not a valid XML name.
func FormatXML(records []types.CanonicalRecord, settings config.OutputSettings) ([]byte, error) {
	for _, name := range []string{settings.XMLRootElement, settings.XMLRecordElement} {
		if !elementName.MatchString(name) {
			return nil, fmt.Errorf("invalid XML element name %q", name)
		}
	}

	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)

	root := XMLElement{XMLName: xml.Name{Local: settings.XMLRootElement}}
	for i, record := range records {
		root.Children = append(root.Children, buildRecordElement(i+1, record, settings.XMLRecordElement))
	}

	if len(root.Children) == 0 {
		// Keep an explicit open/close pair so the root is never self-closing.
		buffer.WriteString("<" + root.XMLName.Local + "></" + root.XMLName.Local + ">\n")
		return buffer.Bytes(), nil
	}

	writeElement(&buffer, root, settings.Indent, 0)
	return buffer.Bytes(), nil
}

// buildRecordElement constructs one record element.
func buildRecordElement(index int, record types.CanonicalRecord, name string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Attributes: []xml.Attr{
			{Name: xml.Name{Local: indexAttribute}, Value: strconv.Itoa(index)},
		},
		Children: []XMLElement{
			createSimpleElement(types.FieldName, record.Name),
			createSimpleElement(types.FieldAddress, record.Address),
			createSimpleElement(types.FieldPostcode, record.Postcode),
			createSimpleElement(types.FieldPhone, record.Phone),
			createSimpleElement(types.FieldCreditLimit, formatAmount(record)),
			createSimpleElement(types.FieldBirthday, formatBirthday(record)),
		},
	}
}

// createSimpleElement creates an element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

// writeElement writes an element and its children with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	buffer.WriteString(strings.Repeat(indent, level))

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)
	for _, attr := range element.Attributes {
		fmt.Fprintf(buffer, " %s=\"%s\"", attr.Name.Local, escapeXML(attr.Value))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if len(element.Children) == 0 {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}
		buffer.WriteString(strings.Repeat(indent, level))
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML text and attributes.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		case '\n':
			buffer.WriteString("&#xA;")
		case '\r':
			buffer.WriteString("&#xD;")
		default:
			buffer.WriteRune(r)
		}
	}
	return buffer.String()
}

// =============================================================================
// XSD GENERATION
// =============================================================================

// GenerateXSD describes the XML output for the configured element names.
//
// Credit limits are typed xs:decimal with two fraction digits; birthdays are
// constrained to the DD/MM/YYYY pattern since the output is not xs:date.
func GenerateXSD(settings config.OutputSettings) ([]byte, error) {
	for _, name := range []string{settings.XMLRootElement, settings.XMLRecordElement} {
		if !elementName.MatchString(name) {
			return nil, fmt.Errorf("invalid XML element name %q", name)
		}
	}

	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)
	buffer.WriteString(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
`)

	fmt.Fprintf(&buffer, `  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>

`, settings.XMLRootElement, settings.XMLRecordElement)

	fmt.Fprintf(&buffer, `  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
`, settings.XMLRecordElement)

	for _, field := range types.CanonicalFields {
		writeXSDElement(&buffer, field, 4)
	}

	buffer.WriteString(`      </xs:sequence>
      <xs:attribute name="n" type="xs:positiveInteger" use="required"/>
    </xs:complexType>
  </xs:element>

</xs:schema>
`)

	return buffer.Bytes(), nil
}

// writeXSDElement writes the definition of one record field.
func writeXSDElement(buffer *bytes.Buffer, field string, indentLevel int) {
	indent := strings.Repeat("  ", indentLevel)

	var restriction string
	switch field {
	case types.FieldCreditLimit:
		restriction = `<xs:restriction base="xs:decimal"><xs:fractionDigits value="2"/></xs:restriction>`
	case types.FieldBirthday:
		restriction = `<xs:restriction base="xs:string"><xs:pattern value="[0-9]{2}/[0-9]{2}/[0-9]{4}"/></xs:restriction>`
	default:
		fmt.Fprintf(buffer, "%s<xs:element name=\"%s\" type=\"xs:string\"/>\n", indent, field)
		return
	}

	fmt.Fprintf(buffer, "%s<xs:element name=\"%s\">\n%s  <xs:simpleType>%s</xs:simpleType>\n%s</xs:element>\n",
		indent, field, indent, restriction, indent)
}
