package delivery

import (
	"bytes"
	"html/template"
	"io"

	"github.com/yuin/goldmark"

	"github.com/Vovarama1992/voice_chat/internal/session"
)

type pageTurn struct {
	Speaker session.Speaker
	Text    string
	HTML    template.HTML
}

type pageData struct {
	Turns      []pageTurn
	AudioToken string
}

// Renderer draws the chat page. Bot replies are Markdown; raw HTML in them is dropped by goldmark.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("index").Parse(indexTemplate)),
		md:   goldmark.New(),
	}
}

func (p *Renderer) Render(w io.Writer, snap session.Snapshot) error {
	data := pageData{AudioToken: snap.AudioToken}
	for _, t := range snap.History {
		turn := pageTurn{Speaker: t.Speaker, Text: t.Text}
		if t.Speaker == session.SpeakerBot {
			var buf bytes.Buffer
			if err := p.md.Convert([]byte(t.Text), &buf); err == nil {
				turn.HTML = template.HTML(buf.String())
			}
		}
		data.Turns = append(data.Turns, turn)
	}
	return p.tmpl.Execute(w, data)
}

const indexTemplate = `<!doctype html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>음성 챗봇</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
.turn { margin: .5rem 0; padding: .5rem .75rem; border-radius: 8px; }
.user { background: #e8f0fe; text-align: right; }
.bot { background: #f1f3f4; }
.bot p { margin: 0; }
form { margin-top: 1rem; display: flex; gap: .5rem; }
input[type=text] { flex: 1; }
</style>
</head>
<body>
<h1>음성 챗봇</h1>
<div id="history">
{{- range .Turns}}
{{- if eq .Speaker "user"}}
<div class="turn user">{{.Text}}</div>
{{- else}}
<div class="turn bot">{{if .HTML}}{{.HTML}}{{else}}{{.Text}}{{end}}</div>
{{- end}}
{{- end}}
</div>
{{- if .AudioToken}}
<audio id="reply-audio" controls autoplay src="/tts_audio?ts={{.AudioToken}}"></audio>
{{- end}}
<form method="post" action="/">
<input type="hidden" name="action" value="text">
<input type="text" name="user_input" placeholder="질문을 입력하세요" autofocus>
<button type="submit">보내기</button>
</form>
<form method="post" action="/" enctype="multipart/form-data">
<input type="hidden" name="action" value="stt">
<input type="file" name="file" accept="audio/*">
<button type="submit">음성 파일로 질문하기</button>
</form>
<button id="record" type="button">🎤 녹음</button>
<script>
(function () {
  var btn = document.getElementById("record");
  if (!window.MediaRecorder || !navigator.mediaDevices) { btn.disabled = true; return; }
  var rec = null, chunks = [];
  btn.onclick = function () {
    if (rec && rec.state === "recording") { rec.stop(); return; }
    navigator.mediaDevices.getUserMedia({ audio: true }).then(function (stream) {
      chunks = [];
      rec = new MediaRecorder(stream);
      rec.ondataavailable = function (e) { chunks.push(e.data); };
      rec.onstop = function () {
        stream.getTracks().forEach(function (t) { t.stop(); });
        var fd = new FormData();
        fd.append("file", new Blob(chunks, { type: rec.mimeType }), "voice.webm");
        fetch("/stt_file", { method: "POST", body: fd }).then(function (r) {
          if (!r.ok) { return r.text().then(function (t) { alert(t); }); }
          location.reload();
        });
        btn.textContent = "🎤 녹음";
      };
      rec.start();
      btn.textContent = "⏹ 멈추기";
    });
  };
})();
</script>
</body>
</html>
`
