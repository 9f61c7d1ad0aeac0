package handlers

import (
	"html/template"

	"fakenews-detector/models"
)

type pageData struct {
	Text    string
	Warning string
	Error   string
	Result  *models.AnalysisResult
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>AI Fake News Detector</title>
<style>
*{box-sizing:border-box}
body{font-family:'Segoe UI',system-ui,sans-serif;margin:0;padding:24px 40px;color:#1f2937;background:#fff}
.big-title{font-size:42px;font-weight:700;color:#2E86C1}
.sub-title{font-size:18px;color:#555;margin-bottom:24px}
.columns{display:grid;grid-template-columns:2fr 1fr;gap:24px}
.results{display:grid;grid-template-columns:1fr 1fr;gap:24px;margin-top:16px}
.card{padding:20px;border-radius:15px;background:#F4F6F7;box-shadow:0 4px 10px rgba(0,0,0,.1)}
textarea{width:100%;height:160px;padding:10px;font-size:15px;border:1px solid #d1d5db;border-radius:8px}
button{width:100%;padding:12px;margin-top:20px;font-size:16px;border:0;border-radius:8px;background:#2E86C1;color:#fff;cursor:pointer}
.info{background:#e8f4fd;border-radius:8px;padding:12px 16px;color:#1c5d8c;line-height:1.8}
.warning{background:#fff7e0;color:#8a6100;border-radius:8px;padding:12px 16px;margin-top:16px}
.error{background:#fdecec;color:#a12020;border-radius:8px;padding:12px 16px;margin-top:16px}
.success{background:#e9f8ee;color:#1d7a3d;border-radius:8px;padding:12px 16px}
progress{width:100%;height:18px}
table{border-collapse:collapse;margin-top:8px;font-size:13px}
td,th{border:1px solid #d1d5db;padding:4px 8px;text-align:left}
footer{margin-top:40px;border-top:1px solid #e5e7eb;padding-top:12px;color:#6b7280;font-size:13px}
</style>
</head>
<body>
<div class="big-title">📰 AI Fake News &amp; Bot Detection</div>
<div class="sub-title">NLP + Machine Learning</div>

<form method="post" action="/analyze" enctype="multipart/form-data">
<div class="columns">
  <div>
    <h3>✍️ Enter News / Comment</h3>
    <label for="text">Type or paste text below:</label>
    <textarea id="text" name="text" placeholder="Example: Drinking salt water cures cancer...">{{.Text}}</textarea>
    <h3>📎 Or Upload File</h3>
    <input id="file" type="file" name="file" accept=".csv,.txt">
  </div>
  <div>
    <h3>ℹ️ How it Works</h3>
    <div class="info">
      • TF-IDF + Logistic Regression<br>
      • Fake vs Real News Detection<br>
      • Bot vs Human Detection<br>
      • Confidence Score
    </div>
  </div>
</div>
<button type="submit">🔍 Analyze Content</button>
</form>

{{with .Warning}}<div class="warning" id="warning">⚠️ {{.}}</div>{{end}}
{{with .Error}}<div class="error" id="error">❌ {{.}}</div>{{end}}

{{with .Result}}
{{with .Preview}}
<h3>📄 Uploaded CSV Preview:</h3>
<table id="preview">
  <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
  {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
</table>
{{end}}
<h2>📊 Analysis Result</h2>
<div class="results">
  <div class="card" id="authenticity">
    <h3>🧠 News Authenticity</h3>
    {{if .Label.IsFake}}<div class="error verdict">❌ <b>FAKE NEWS DETECTED</b></div>
    {{else}}<div class="success verdict">✅ <b>REAL NEWS DETECTED</b></div>{{end}}
    <p><b>Confidence:</b> <span class="confidence">{{printf "%.2f" .Confidence}}%</span></p>
    <progress id="confidence-bar" max="100" value="{{.Progress}}">{{.Progress}}%</progress>
  </div>
  <div class="card" id="bot">
    <h3>🤖 Bot Detection</h3>
    {{if .Bot.LikelyBot}}<div class="warning verdict">⚠️ Likely Bot-Generated Content</div>
    {{else}}<div class="success verdict">👤 Likely Human-Generated Content</div>{{end}}
    <p class="reason">Reason: {{.Bot.Reason}}</p>
  </div>
</div>
{{end}}

<footer>🚀 Fake News &amp; Bot Detector</footer>
</body>
</html>`))
