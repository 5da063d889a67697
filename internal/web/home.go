package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="es">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Word Rush</title>
    <link rel="stylesheet" href="`+assetPath("/static/styles.css")+`"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Word Rush</span>
        <h1>Una letra. Cinco categor&iacute;as. Corre.</h1>
        <p>Crea una sala en segundos o entra con el c&oacute;digo de tu grupo.</p>
      </header>

      <section class="panel">
        <div>
          <h2>Crear una sala</h2>
          <p>Genera una sala nueva y comparte el c&oacute;digo con tus jugadores.</p>
        </div>
        <button id="createGame" class="primary">Crear sala</button>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <div>
          <h2>Entrar a una sala</h2>
          <p>Escribe el c&oacute;digo de la sala y tu nombre.</p>
        </div>
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="C&oacute;digo" autocomplete="off" required/>
          <input name="name" placeholder="Tu nombre" autocomplete="name" required/>
          <button type="submit" class="secondary">Entrar</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Salas activas</h2>
        <ul id="gameList" class="game-list"></ul>
      </section>
    </main>

    <script>
      const createBtn = document.getElementById("createGame");
      const createResult = document.getElementById("createResult");
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");
      const gameList = document.getElementById("gameList");

      createBtn.addEventListener("click", async () => {
        createResult.textContent = "Creando sala...";
        const res = await fetch("/api/games", { method: "POST" });
        const data = await res.json();
        if (!res.ok) {
          createResult.textContent = data.error || "No se pudo crear la sala.";
          return;
        }
        createResult.textContent = "Sala creada. Código: " + data.join_code;
      });

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Entrando...";
        const code = joinForm.elements.code.value.trim();
        const name = joinForm.elements.name.value.trim();
        const res = await fetch("/api/games/" + encodeURIComponent(code) + "/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name })
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "No se pudo entrar.";
          return;
        }
        localStorage.setItem("wr_conn_" + data.game.game_id, data.conn_id);
        localStorage.setItem("wr_player_" + data.game.game_id, data.player_id);
        window.location.href = "/play/" + data.game.game_id;
      });

      function renderGames(games) {
        gameList.innerHTML = "";
        for (const game of games) {
          const item = document.createElement("li");
          item.textContent = game.join_code + " · " + game.phase + " · " + game.players + " jugadores";
          gameList.appendChild(item);
        }
      }

      const proto = location.protocol === "https:" ? "wss://" : "ws://";
      const socket = new WebSocket(proto + location.host + "/ws/home");
      socket.addEventListener("message", (event) => {
        const data = JSON.parse(event.data);
        if (data.games) renderGames(data.games);
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}

func JoinView(code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="es">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Word Rush - Entrar</title>
    <link rel="stylesheet" href="`+assetPath("/static/styles.css")+`"/>
  </head>
  <body>
    <main class="shell">
      <section class="panel">
        <h1>Entrar a la sala</h1>
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="C&oacute;digo" autocomplete="off" value="`+templ.EscapeString(code)+`" required/>
          <input name="name" placeholder="Tu nombre" autocomplete="name" required/>
          <button type="submit" class="primary">Entrar</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
    </main>
    <script>
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");
      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Entrando...";
        const code = joinForm.elements.code.value.trim();
        const name = joinForm.elements.name.value.trim();
        const res = await fetch("/api/games/" + encodeURIComponent(code) + "/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name })
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "No se pudo entrar.";
          return;
        }
        localStorage.setItem("wr_conn_" + data.game.game_id, data.conn_id);
        localStorage.setItem("wr_player_" + data.game.game_id, data.player_id);
        window.location.href = "/play/" + data.game.game_id;
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
