package server

// indexHTML is the browser form served at the root path. It posts the
// entered URL to /analyze and renders the JSON reply.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Phishing URL Detector</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; padding: 0 1em; }
input[type=url] { width: 70%; padding: 0.5em; }
button { padding: 0.5em 1em; }
.HIGH { color: #c0392b; font-weight: bold; }
.MEDIUM { color: #e67e22; font-weight: bold; }
.LOW { color: #27ae60; font-weight: bold; }
ul { margin-top: 0.5em; }
pre { background: #f4f4f4; padding: 1em; overflow-x: auto; }
</style>
</head>
<body>
<h1>Phishing URL Detector</h1>
<form id="form">
<input type="url" id="url" placeholder="https://example.com/login" required>
<button type="submit">Analyze</button>
</form>
<div id="result"></div>
<script>
document.getElementById('form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const out = document.getElementById('result');
  out.textContent = 'Analyzing...';
  try {
    const resp = await fetch('/analyze', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({url: document.getElementById('url').value})
    });
    const data = await resp.json();
    if (!resp.ok) {
      out.textContent = 'Error: ' + data.error;
      return;
    }
    const recs = (data.recommendations || []).map(r => '<li>' + r + '</li>').join('');
    out.innerHTML =
      '<p>Risk: <span class="' + data.risk_level + '">' + data.risk_level + '</span>' +
      ' (score ' + data.score.toFixed(2) + ')</p>' +
      '<ul>' + recs + '</ul>' +
      '<pre>' + JSON.stringify(data.features, null, 2) + '</pre>';
  } catch (err) {
    out.textContent = 'Request failed: ' + err;
  }
});
</script>
</body>
</html>
`
