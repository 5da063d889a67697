package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PlayerView is the playing surface: answer inputs while the round runs,
// the vote sheet during review, the scoreboard after.
func PlayerView(gameID string) templ.Component {
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
    <main class="shell" data-game-id="`+templ.EscapeString(gameID)+`">
      <header class="round-header">
        <span id="joinCode" class="tag"></span>
        <span id="phase" class="tag"></span>
        <span id="letter" class="letter"></span>
        <span id="countdown" class="countdown"></span>
      </header>
      <section id="lobby" class="panel hidden">
        <h2>Sala de espera</h2>
        <ul id="playerList" class="player-list"></ul>
        <button id="startGame" class="primary">Empezar</button>
        <div id="lobbyResult" class="result"></div>
      </section>
      <section id="round" class="panel hidden">
        <form id="answerForm" class="answer-form"></form>
        <button id="stopRound" class="secondary">&iexcl;Basta!</button>
      </section>
      <section id="review" class="panel hidden">
        <h2>Revisi&oacute;n</h2>
        <div id="voteSheet"></div>
        <button id="confirmVotes" class="primary">Confirmar votos</button>
      </section>
      <section id="results" class="panel hidden">
        <h2>Resultados</h2>
        <ul id="scoreList" class="score-list"></ul>
      </section>
    </main>
    <script src="`+assetPath("/static/play.js")+`"></script>
  </body>
</html>
`)
		return nil
	})
}

// GameView is the read-only observer surface for a shared screen.
func GameView(gameID string) templ.Component {
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
    <main class="shell display" data-game-id="`+templ.EscapeString(gameID)+`">
      <header class="round-header">
        <span id="joinCode" class="tag"></span>
        <span id="phase" class="tag"></span>
        <span id="letter" class="letter"></span>
      </header>
      <section class="panel">
        <ul id="playerList" class="player-list"></ul>
        <ul id="scoreList" class="score-list"></ul>
      </section>
    </main>
    <script>
      const gameID = document.querySelector("main").dataset.gameId;
      const proto = location.protocol === "https:" ? "wss://" : "ws://";
      const socket = new WebSocket(proto + location.host + "/ws/games/" + gameID);
      socket.addEventListener("message", (event) => {
        const data = JSON.parse(event.data);
        const state = data.state;
        if (!state) return;
        document.getElementById("joinCode").textContent = data.join_code;
        document.getElementById("phase").textContent = state.phase;
        document.getElementById("letter").textContent = state.current_letter || "";
        const players = document.getElementById("playerList");
        players.innerHTML = "";
        const scores = document.getElementById("scoreList");
        scores.innerHTML = "";
        for (const player of state.players || []) {
          const item = document.createElement("li");
          item.textContent = player.name + (player.is_host ? " (anfitrión)" : "");
          if (!player.is_connected) item.classList.add("away");
          players.appendChild(item);
          const score = document.createElement("li");
          score.textContent = player.name + ": " + player.score;
          scores.appendChild(score);
        }
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
