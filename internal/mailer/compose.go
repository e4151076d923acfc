// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"bytes"
	"fmt"
	"html"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"time"

	"github.com/tdasolutions/sitecms/internal/model"
)

// composeMessage builds a multipart/alternative RFC 5322 message with a
// plain-text and an HTML body.
func composeMessage(settings model.EmailSettings, to, subject, htmlBody, textBody string) []byte {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	from := settings.FromEmail
	if settings.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", settings.FromName), settings.FromEmail)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	// Least-preferred alternative first per RFC 2046.
	writePart(mw, "text/plain", textBody)
	writePart(mw, "text/html", htmlBody)
	_ = mw.Close()

	return buf.Bytes()
}

func writePart(mw *multipart.Writer, contentType, body string) {
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Type", contentType+"; charset=UTF-8")
	hdr.Set("Content-Transfer-Encoding", "quoted-printable")

	part, err := mw.CreatePart(hdr)
	if err != nil {
		return
	}
	qp := quotedprintable.NewWriter(part)
	_, _ = qp.Write([]byte(body))
	_ = qp.Close()
}

// contactHTML renders the Arabic RTL notification for a contact request.
func contactHTML(data ContactData) string {
	name := html.EscapeString(data.Name)
	email := html.EscapeString(data.Email)
	phone := html.EscapeString(data.Phone)
	service := html.EscapeString(data.Service)
	message := html.EscapeString(data.Message)

	return fmt.Sprintf(`<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4A246D; border-bottom: 2px solid #4A246D; padding-bottom: 10px;">
    طلب تواصل جديد
  </h2>

  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #2C5282; margin-top: 0;">بيانات العميل:</h3>

    <p><strong>الاسم:</strong> %s</p>
    <p><strong>البريد الإلكتروني:</strong> <a href="mailto:%s">%s</a></p>
    <p><strong>رقم الهاتف:</strong> <a href="tel:%s">%s</a></p>
    <p><strong>الخدمة المطلوبة:</strong> %s</p>
  </div>

  <div style="background: white; padding: 20px; border-right: 4px solid #A8D8A0; margin: 20px 0;">
    <h3 style="color: #2C5282; margin-top: 0;">الرسالة:</h3>
    <p style="line-height: 1.6; white-space: pre-wrap;">%s</p>
  </div>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #dee2e6; text-align: center; color: #6c757d; font-size: 14px;">
    <p>تم إرسال هذه الرسالة من موقع TDA Solutions</p>
    <p><a href="https://tda.sa" style="color: #4A246D;">www.tda.sa</a></p>
  </div>
</div>`, name, email, email, phone, phone, service, message)
}

// contactText is the plain-text alternative for clients without HTML.
func contactText(data ContactData) string {
	return fmt.Sprintf(`طلب تواصل جديد

الاسم: %s
البريد الإلكتروني: %s
رقم الهاتف: %s
الخدمة المطلوبة: %s

الرسالة:
%s

تم إرسال هذه الرسالة من موقع TDA Solutions
https://tda.sa
`, data.Name, data.Email, data.Phone, data.Service, data.Message)
}

func testHTML() string {
	return `<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4A246D; border-bottom: 2px solid #4A246D; padding-bottom: 10px;">
    رسالة اختبار
  </h2>
  <p style="line-height: 1.6;">تم إرسال هذه الرسالة للتحقق من إعدادات البريد الإلكتروني. إذا وصلتك هذه الرسالة فإن الإعدادات تعمل بشكل صحيح.</p>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #dee2e6; text-align: center; color: #6c757d; font-size: 14px;">
    <p>نظام إدارة المحتوى - TDA Solutions</p>
  </div>
</div>`
}

func testText() string {
	return `رسالة اختبار

تم إرسال هذه الرسالة للتحقق من إعدادات البريد الإلكتروني. إذا وصلتك هذه الرسالة فإن الإعدادات تعمل بشكل صحيح.

نظام إدارة المحتوى - TDA Solutions
`
}
