// carbib-crm/internal/handlers/docx_builder.go
//
// Минимальный генератор DOCX: документ собирается напрямую как OOXML-пакет
// (zip с document.xml, стилями и медиа), без внешних библиотек.
package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
)

const emuPerInch = 914400

// docxImage — изображение, встроенное в документ.
type docxImage struct {
	relID string
	name  string
	data  []byte
}

// docxBuilder накапливает содержимое тела документа и медиа-файлы.
type docxBuilder struct {
	body   strings.Builder
	images []docxImage
}

func newDocxBuilder() *docxBuilder {
	return &docxBuilder{}
}

// escapeXML экранирует текст для вставки в OOXML.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// AddHeading добавляет заголовок. Уровень 0 — титульный стиль документа.
func (b *docxBuilder) AddHeading(text string, level int) {
	style := "Title"
	if level > 0 {
		style = fmt.Sprintf("Heading%d", level)
	}
	fmt.Fprintf(&b.body,
		`<w:p><w:pPr><w:pStyle w:val="%s"/></w:pPr><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		style, escapeXML(text))
}

// AddParagraph добавляет обычный абзац.
func (b *docxBuilder) AddParagraph(text string) {
	fmt.Fprintf(&b.body,
		`<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		escapeXML(text))
}

// AddTable добавляет таблицу из пар "метка — значение" с сеткой границ.
func (b *docxBuilder) AddTable(rows [][2]string) {
	b.body.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/>` +
		`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders></w:tblPr>`)
	for _, row := range rows {
		b.body.WriteString("<w:tr>")
		for _, cell := range row {
			fmt.Fprintf(&b.body,
				`<w:tc><w:tcPr><w:tcW w:w="4500" w:type="dxa"/></w:tcPr><w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p></w:tc>`,
				escapeXML(cell))
		}
		b.body.WriteString("</w:tr>")
	}
	b.body.WriteString("</w:tbl>")
}

// AddPageBreak добавляет разрыв страницы.
func (b *docxBuilder) AddPageBreak() {
	b.body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}

// AddPicture встраивает изображение шириной widthInches дюймов,
// сохраняя пропорции (нечитаемый файл получает квадратную рамку).
func (b *docxBuilder) AddPicture(data []byte, widthInches float64) {
	ext := "png"
	cx := int64(widthInches * emuPerInch)
	cy := cx
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil && cfg.Width > 0 {
		if format == "jpeg" {
			ext = "jpeg"
		}
		cy = int64(float64(cx) * float64(cfg.Height) / float64(cfg.Width))
	}

	idx := len(b.images) + 1
	relID := fmt.Sprintf("rId%d", idx+1) // rId1 занят styles.xml
	name := fmt.Sprintf("image%d.%s", idx, ext)
	b.images = append(b.images, docxImage{relID: relID, name: name, data: data})

	fmt.Fprintf(&b.body,
		`<w:p><w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/><wp:docPr id="%d" name="Picture %d"/>`+
			`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`,
		cx, cy, idx, idx, idx, name, relID, cx, cy)
}

// Save сериализует документ в поток как DOCX-пакет.
func (b *docxBuilder) Save(w io.Writer) error {
	zw := zip.NewWriter(w)

	write := func(name, content string) error {
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("ошибка создания файла в zip: %w", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			return fmt.Errorf("ошибка записи в %s: %w", name, err)
		}
		return nil
	}

	var contentTypes strings.Builder
	contentTypes.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		`<Default Extension="jpeg" ContentType="image/jpeg"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
		`</Types>`)
	if err := write("[Content_Types].xml", contentTypes.String()); err != nil {
		return err
	}

	if err := write("_rels/.rels",
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>`+
			`</Relationships>`); err != nil {
		return err
	}

	var docRels strings.Builder
	docRels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for _, img := range b.images {
		fmt.Fprintf(&docRels,
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
			img.relID, img.name)
	}
	docRels.WriteString(`</Relationships>`)
	if err := write("word/_rels/document.xml.rels", docRels.String()); err != nil {
		return err
	}

	if err := write("word/styles.xml",
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+
			`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:rPr><w:b/><w:sz w:val="56"/></w:rPr></w:style>`+
			`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>`+
			`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>`+
			`</w:styles>`); err != nil {
		return err
	}

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
		`<w:body>`)
	doc.WriteString(b.body.String())
	doc.WriteString(`</w:body></w:document>`)
	if err := write("word/document.xml", doc.String()); err != nil {
		return err
	}

	for _, img := range b.images {
		fw, err := zw.Create("word/media/" + img.name)
		if err != nil {
			return fmt.Errorf("ошибка создания файла в zip: %w", err)
		}
		if _, err := fw.Write(img.data); err != nil {
			return fmt.Errorf("ошибка записи изображения %s: %w", img.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия zip writer: %w", err)
	}
	return nil
}
