package sink

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matzehuels/bigpicture/pkg/geometry"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/render/box/styles"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title    string
	endpoint string
	svgOpts  []SVGOption
}

// WithTitle sets the page title and header text.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithEndpoint makes the page interactive against a session API rooted at
// base (for example "/api/sessions/<id>"). Without one the page carries its
// own geometry and relays out toggles in the browser.
func WithEndpoint(base string) HTMLOption { return func(r *htmlRenderer) { r.endpoint = base } }

// WithHTMLSVGOptions passes options through to the embedded SVG.
func WithHTMLSVGOptions(opts ...SVGOption) HTMLOption {
	return func(r *htmlRenderer) { r.svgOpts = opts }
}

type legendEntry struct {
	Kind   tree.Kind
	Fill   string
	Stroke string
}

type pageData struct {
	Title    string
	Endpoint string
	Boxes    int
	Width    string
	Height   string
	Legend   []legendEntry
	SVG      template.HTML
	Geometry *geometry.Layout
}

// RenderHTML renders a standalone viewer page for l.
func RenderHTML(l *layout.Layout, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{title: l.Root().Label.Text}
	for _, opt := range opts {
		opt(&r)
	}

	svgOpts := append([]SVGOption{WithEmbedded()}, r.svgOpts...)
	var doc *geometry.Layout
	if r.endpoint == "" {
		svgOpts = append(svgOpts, WithHiddenContent())
		g := l.Export()
		doc = &g
	}

	data := pageData{
		Title:    r.title,
		Endpoint: r.endpoint,
		Boxes:    l.Len(),
		Width:    num(l.Width()),
		Height:   num(l.Height()),
		SVG:      template.HTML(RenderSVG(l, svgOpts...)),
		Geometry: doc,
	}
	for _, k := range tree.Kinds {
		st := styles.For(k)
		data.Legend = append(data.Legend, legendEntry{Kind: k, Fill: st.Fill, Stroke: st.Stroke})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · bigpicture</title>
  <style>
    body { margin: 0; background: #fcfcfc; font-family: 'Inter', sans-serif; color: #1e293b; overflow: hidden; height: 100vh; }
    header { position: fixed; top: 0; left: 0; right: 0; height: 60px; display: flex; align-items: center; gap: 16px; padding: 0 32px; background: rgba(255,255,255,0.9); border-bottom: 1px solid rgba(0,0,0,0.06); z-index: 10; }
    h1 { margin: 0; font-size: 1.05rem; font-weight: 800; }
    .stats { font-size: 0.75rem; color: #64748b; }
    #search-input { border: none; border-radius: 16px; background: rgba(0,0,0,0.05); padding: 7px 14px; width: 220px; outline: none; }
    .header-btn { padding: 6px 12px; border: 1px solid rgba(0,0,0,0.1); border-radius: 8px; background: white; cursor: pointer; font-size: 12px; font-weight: 600; }
    .legend { display: flex; gap: 10px; margin-left: auto; font-size: 11px; }
    .legend span { display: inline-flex; align-items: center; gap: 4px; }
    .legend i { width: 10px; height: 10px; border-radius: 3px; border: 1px solid; display: inline-block; }
    #viewport { position: absolute; top: 60px; left: 0; right: 0; bottom: 0; cursor: grab; }
    #canvas { transform-origin: 0 0; padding: 24px; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <span class="stats">{{.Boxes}} boxes · <span id="size">{{.Width}}×{{.Height}}</span></span>
    <input id="search-input" type="search" placeholder="Search labels…" autocomplete="off">
    <button class="header-btn" id="expand-all">Expand all</button>
    <button class="header-btn" id="collapse-all">Collapse all</button>
    <div class="legend">{{range .Legend}}<span><i style="background: {{.Fill}}; border-color: {{.Stroke}}"></i>{{.Kind}}</span>{{end}}</div>
  </header>
  <div id="viewport"><div id="canvas">{{.SVG}}</div></div>
  <script>
    const endpoint = {{.Endpoint}};
    const doc = {{.Geometry}};
    const canvas = document.getElementById('canvas');
    const viewport = document.getElementById('viewport');
    const input = document.getElementById('search-input');
    let scale = 1, panX = 0, panY = 0, drag = null;

    function apply() { canvas.style.transform = 'translate(' + panX + 'px,' + panY + 'px) scale(' + scale + ')'; }
    viewport.addEventListener('wheel', (e) => {
      e.preventDefault();
      scale = Math.min(4, Math.max(0.1, scale * (e.deltaY < 0 ? 1.1 : 0.9)));
      apply();
    }, { passive: false });
    viewport.addEventListener('mousedown', (e) => { drag = { x: e.clientX - panX, y: e.clientY - panY }; });
    window.addEventListener('mouseup', () => { drag = null; });
    window.addEventListener('mousemove', (e) => { if (drag) { panX = e.clientX - drag.x; panY = e.clientY - drag.y; apply(); } });

    async function refresh() {
      const q = encodeURIComponent(input.value);
      const res = await fetch(endpoint + '/svg?embedded=1&q=' + q);
      if (res.ok) { canvas.innerHTML = await res.text(); }
    }

    async function post(path) {
      const res = await fetch(endpoint + path, { method: 'POST' });
      if (!res.ok) { console.warn('bigpicture:', await res.text()); }
      await refresh();
    }

    function searchLocal(q) {
      q = q.trim().toLowerCase();
      const nodes = document.querySelectorAll('.node');
      nodes.forEach(n => n.classList.remove('dimmed', 'match'));
      if (!q) return;
      const revealed = new Set();
      nodes.forEach(n => {
        if ((n.dataset.label || '').toLowerCase().includes(q)) {
          n.classList.add('match');
          for (let p = n; p && p.classList; p = p.parentElement) {
            if (p.classList.contains('node')) revealed.add(p);
          }
        }
      });
      nodes.forEach(n => { if (!revealed.has(n)) n.classList.add('dimmed'); });
    }

    // Offline relayout over the embedded geometry. Each container restacks
    // its rows from its children's heights, then every ancestor does the same.
    const parents = new Map();
    const boxes = new Map();
    function index(b, parent) {
      boxes.set(b.id, b);
      parents.set(b.id, parent);
      (b.rows || []).forEach(r => r.items.forEach(c => index(c, b)));
    }

    function restack(b) {
      const cfg = doc.config;
      const rows = b.rows || [];
      let y = cfg.header_height, content = 0;
      rows.forEach(r => {
        r.height = Math.max(...r.items.map(c => c.height));
        r.y = y;
        r.items.forEach(c => { c.y = y; });
        y += r.height + cfg.margin;
        content += r.height;
      });
      content += (rows.length - 1) * cfg.margin;
      b.height = b.collapsed ? cfg.header_height : content + cfg.header_height + cfg.padding;
    }

    function relayout(b) {
      for (let p = b; p; p = parents.get(p.id)) restack(p);
      doc.height = doc.root.height;
    }

    function restackAll(b) {
      const rows = b.rows || [];
      rows.forEach(r => r.items.forEach(restackAll));
      if (rows.length) restack(b);
    }

    function draw(b) {
      const g = document.getElementById(b.id);
      if (g) {
        g.setAttribute('transform', 'translate(' + b.x + ', ' + b.y + ')');
        g.classList.toggle('collapsed', !!b.collapsed);
        const rect = g.querySelector(':scope > .box-rect');
        if (rect) rect.setAttribute('height', b.height);
        const sign = g.querySelector(':scope > .toggle-btn > text');
        if (sign) sign.textContent = b.collapsed ? '+' : '-';
        const content = document.getElementById('content-' + b.id);
        if (content) content.style.display = b.collapsed ? 'none' : '';
      }
      (b.rows || []).forEach(r => r.items.forEach(draw));
    }

    function redraw() {
      draw(doc.root);
      const svg = document.getElementById('diagram');
      if (svg) svg.setAttribute('viewBox', '0 0 ' + doc.width + ' ' + doc.height);
      document.getElementById('size').textContent = doc.width + '×' + doc.height;
    }

    function toggleLocal(id) {
      const b = boxes.get(id);
      if (!b || !(b.rows || []).length) return;
      b.collapsed = !b.collapsed;
      relayout(b);
      redraw();
    }

    function setAllLocal(collapsed) {
      boxes.forEach(b => { if ((b.rows || []).length) b.collapsed = collapsed; });
      restackAll(doc.root);
      doc.height = doc.root.height;
      redraw();
    }

    if (doc) index(doc.root, null);

    canvas.addEventListener('click', (e) => {
      const btn = e.target.closest('.toggle-btn');
      if (!btn) return;
      if (endpoint) { post('/toggle/' + encodeURIComponent(btn.dataset.box)); } else { toggleLocal(btn.dataset.box); }
    });
    input.addEventListener('input', () => { endpoint ? refresh() : searchLocal(input.value); });
    document.getElementById('expand-all').addEventListener('click', () => { endpoint ? post('/expand-all') : setAllLocal(false); });
    document.getElementById('collapse-all').addEventListener('click', () => { endpoint ? post('/collapse-all') : setAllLocal(true); });
  </script>
</body>
</html>
`))
