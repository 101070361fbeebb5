package server

// layoutTpl holds the page layout plus the home and topic pages.
// No external assets.
const layoutTpl = `{{define "head"}}<!doctype html>
<html lang="en">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;max-width:900px;margin:0 auto;padding:1rem}
header{display:flex;justify-content:space-between;align-items:center;margin-bottom:1rem}
ul{list-style:none;padding:0;margin:0}
.group{border:1px solid #ddd;border-radius:8px;padding:12px;margin-bottom:12px}
.group li{padding:4px 0}
.diagnostic{border-left:4px solid #d33;padding:8px 12px;background:#fff5f5}
.diagnostic.not-found{border-color:#e80}
.placeholder,.muted,small{color:#666}
.heading{font-weight:600;color:#246}
code{background:#f4f4f4;padding:0 4px;border-radius:4px}
</style>
{{end}}

{{define "home"}}{{template "head" .}}
<header>
  <strong>hookpad</strong>
  <small>state management practice</small>
</header>
{{range .Groups}}
<section class="group">
  <h3>{{.Name}}</h3>
  <ul>
  {{range .Units}}
    <li><a href="{{link .}}">{{.Name}}</a></li>
  {{end}}
  </ul>
</section>
{{else}}
<small>No lessons</small>
{{end}}
</html>
{{end}}

{{define "topic"}}{{template "head" .}}
<header>
  <a href="/">⬅ All lessons</a>
  <small><code>{{.Target}}</code> · {{.Phase}}</small>
</header>
<main>
{{.Content}}
</main>
</html>
{{end}}`
