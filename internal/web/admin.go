package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Admin() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Word Rush - Admin</title>
    <link rel="stylesheet" href="`+assetPath("/static/styles.css")+`"/>
  </head>
  <body>
    <main class="shell admin">
      <h1>Word Rush admin</h1>
      <section class="panel">
        <h2>Active games</h2>
        <ul id="gameList" class="game-list"></ul>
        <button id="refresh" class="secondary">Refresh</button>
      </section>
      <section class="panel">
        <h2>Dictionary</h2>
        <div id="dictionaryInfo" class="result"></div>
        <button id="reloadDictionary" class="primary">Reload from database</button>
        <div id="reloadResult" class="result"></div>
      </section>
      <section class="panel">
        <h2>Restore game</h2>
        <p>Paste a snapshot payload to bring a game back.</p>
        <textarea id="snapshotInput" rows="8" placeholder='{"join_code":"ABC123","state":{...}}'></textarea>
        <button id="restoreGame" class="secondary">Restore</button>
        <div id="restoreResult" class="result"></div>
      </section>
    </main>
    <script>
      const gameList = document.getElementById("gameList");
      const dictionaryInfo = document.getElementById("dictionaryInfo");

      async function refresh() {
        const res = await fetch("/admin/api/games");
        if (!res.ok) return;
        const data = await res.json();
        gameList.innerHTML = "";
        for (const game of data.games || []) {
          const item = document.createElement("li");
          item.textContent = game.game_id + " · " + game.join_code + " · " + game.phase + " · " + game.players + " players";
          gameList.appendChild(item);
        }
        dictionaryInfo.textContent = (data.dictionary || []).join(", ");
      }

      document.getElementById("refresh").addEventListener("click", refresh);

      document.getElementById("reloadDictionary").addEventListener("click", async () => {
        const result = document.getElementById("reloadResult");
        result.textContent = "Reloading...";
        const res = await fetch("/admin/api/dictionary/reload", { method: "POST" });
        const data = await res.json();
        result.textContent = res.ok ? "Reloaded: " + data.categories.join(", ") : data.error;
        refresh();
      });

      document.getElementById("restoreGame").addEventListener("click", async () => {
        const result = document.getElementById("restoreResult");
        let payload;
        try {
          payload = JSON.parse(document.getElementById("snapshotInput").value);
        } catch (err) {
          result.textContent = "Invalid JSON.";
          return;
        }
        const res = await fetch("/admin/api/restore", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(payload)
        });
        const data = await res.json();
        result.textContent = res.ok ? "Restored " + data.game_id : data.error;
        refresh();
      });

      refresh();
    </script>
  </body>
</html>
`)
		return nil
	})
}
