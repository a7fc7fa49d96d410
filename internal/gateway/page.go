package gateway

import (
	"html/template"
	"io"
)

var payPage = template.Must(template.New("pay").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Fake Payment Gateway</title></head>
<body>
  <h2>Fake Payment Gateway</h2>
  <p>Reference: {{.Ref}}</p>
  <button onclick="send('success')">Success</button>
  <button onclick="send('failed')">Fail</button>
  <script>
    function send(status) {
      fetch('/fake/confirm', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({ref: {{.Ref}}, status: status})
      }).then(function () { alert(status); });
    }
  </script>
</body>
</html>
`))

// RenderPayPage writes the checkout page for ref. The reference is escaped
// for both the HTML body and the inline script.
func RenderPayPage(w io.Writer, ref string) error {
	return payPage.Execute(w, struct{ Ref string }{Ref: ref})
}
