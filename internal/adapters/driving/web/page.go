package web

import (
	"fmt"
	"net/http"
)

// handleIndex serves the single-page chat UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML) //nolint:errcheck // Response already committed
}

//nolint:misspell,lll // CSS properties use American spelling, some lines exceed line length
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Docent</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            flex-direction: column;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
            color: #333F50;
        }
        header {
            display: flex;
            align-items: center;
            gap: 16px;
            padding: 12px 24px;
            background: white;
            border-bottom: 1px solid #C7C8CC;
        }
        header h1 {
            margin: 0;
            font-size: 20px;
            font-weight: 600;
        }
        #status {
            flex: 1;
            color: #7B8088;
            font-size: 14px;
        }
        button {
            font-size: 14px;
            padding: 6px 14px;
            border: 1px solid #C7C8CC;
            border-radius: 8px;
            background: white;
            color: #333F50;
            cursor: pointer;
        }
        button:disabled {
            color: #C7C8CC;
            cursor: default;
        }
        #transcript {
            flex: 1;
            overflow-y: auto;
            padding: 24px;
            display: flex;
            flex-direction: column;
            gap: 12px;
        }
        .bubble {
            max-width: 720px;
            padding: 12px 16px;
            border-radius: 12px;
            white-space: pre-wrap;
        }
        .bubble.user {
            align-self: flex-end;
            background: #6675FF;
            color: white;
        }
        .bubble.assistant {
            align-self: flex-start;
            background: white;
            border: 1px solid #C7C8CC;
        }
        .bubble.pending, .bubble.error {
            color: #7B8088;
        }
        .sources {
            align-self: flex-start;
            font-size: 13px;
            color: #7B8088;
            padding-left: 16px;
        }
        footer {
            display: flex;
            gap: 8px;
            padding: 16px 24px;
            background: white;
            border-top: 1px solid #C7C8CC;
        }
        select, input {
            font-size: 14px;
            padding: 6px 10px;
            border: 1px solid #C7C8CC;
            border-radius: 8px;
            background: white;
            color: #333F50;
        }
        #question {
            flex: 1;
        }
    </style>
</head>
<body>
    <header>
        <h1>Docent</h1>
        <span id="status">Loading...</span>
        <button id="new">New conversation</button>
        <button id="reindex">Reindex</button>
    </header>
    <div id="transcript"></div>
    <footer>
        <select id="category">
            <option value="">All categories</option>
        </select>
        <input id="question" type="text" placeholder="Ask a question about your documents" autofocus>
        <button id="ask">Ask</button>
    </footer>
    <script>
        var conversationId = '';

        function el(id) { return document.getElementById(id); }

        function refreshStatus() {
            fetch('/api/status').then(function(r) { return r.json(); }).then(function(s) {
                var text;
                if (s.running) {
                    text = 'Rebuilding index...';
                    setTimeout(refreshStatus, 2000);
                } else if (!s.indexed) {
                    text = 'Index is empty. Click Reindex to build it.';
                } else {
                    text = s.document_count + ' documents, ' + s.chunk_count + ' chunks (' + s.embedding_model + ')';
                }
                if (s.last_reindex_error) {
                    text += ' - last rebuild failed: ' + s.last_reindex_error;
                }
                el('status').textContent = text;
                el('reindex').disabled = !!s.running;
                if (!s.running) { loadCategories(); }
            });
        }

        function loadCategories() {
            fetch('/api/categories').then(function(r) { return r.json(); }).then(function(names) {
                var sel = el('category');
                while (sel.options.length > 1) { sel.remove(1); }
                names.forEach(function(name) {
                    var opt = document.createElement('option');
                    opt.value = name;
                    opt.textContent = name;
                    sel.appendChild(opt);
                });
            });
        }

        function addBubble(cls, text) {
            var div = document.createElement('div');
            div.className = 'bubble ' + cls;
            div.textContent = text;
            el('transcript').appendChild(div);
            div.scrollIntoView();
            return div;
        }

        function addSources(sources) {
            if (!sources || sources.length === 0) { return; }
            var list = document.createElement('div');
            list.className = 'sources';
            sources.forEach(function(src, i) {
                var line = document.createElement('div');
                var loc = src.rel_path;
                if (src.page > 0) { loc += ', p.' + src.page; }
                line.textContent = '[' + (i + 1) + '] ' + src.title + ' (' + loc + ')';
                list.appendChild(line);
            });
            el('transcript').appendChild(list);
            list.scrollIntoView();
        }

        function ask() {
            var input = el('question');
            var question = input.value.trim();
            if (question === '') { return; }
            input.value = '';
            addBubble('user', question);
            var pending = addBubble('assistant pending', 'Thinking...');

            var body = { question: question };
            var category = el('category').value;
            if (category !== '') { body.category = category; }
            if (conversationId !== '') { body.conversation_id = conversationId; }

            fetch('/api/ask', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify(body)
            }).then(function(r) { return r.json(); }).then(function(resp) {
                pending.remove();
                if (resp.error) {
                    addBubble('assistant error', resp.error);
                    return;
                }
                conversationId = resp.conversation_id;
                addBubble('assistant', resp.answer);
                addSources(resp.sources);
            }).catch(function(err) {
                pending.remove();
                addBubble('assistant error', 'Request failed: ' + err);
            });
        }

        function newConversation() {
            conversationId = '';
            el('transcript').innerHTML = '';
        }

        function reindex() {
            fetch('/api/reindex', { method: 'POST' }).then(function() {
                refreshStatus();
            });
        }

        el('ask').addEventListener('click', ask);
        el('question').addEventListener('keydown', function(e) {
            if (e.key === 'Enter') { ask(); }
        });
        el('reindex').addEventListener('click', reindex);
        el('new').addEventListener('click', newConversation);

        refreshStatus();
    </script>
</body>
</html>`
