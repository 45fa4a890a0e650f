package http

import (
	"net/http"
)

// frontendHTML is the embedded HTML for the measurement frontend.
// Mobile-first, responsive design with pure CSS.
const frontendHTML = `<!DOCTYPE html>
<html lang="de">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Metes - Messwerkzeug</title>
    <style>
        :root {
            --primary: #2563eb;
            --primary-dark: #1d4ed8;
            --success: #16a34a;
            --error: #dc2626;
            --warning: #d97706;
            --bg: #f8fafc;
            --card: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
            --radius: 8px;
            --shadow: 0 1px 3px rgba(0,0,0,0.1);
        }

        * {
            box-sizing: border-box;
            margin: 0;
            padding: 0;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.5;
            min-height: 100vh;
        }

        .container {
            max-width: 800px;
            margin: 0 auto;
            padding: 1rem;
        }

        header {
            text-align: center;
            padding: 1.5rem 0;
            border-bottom: 1px solid var(--border);
            margin-bottom: 1.5rem;
        }

        header h1 {
            font-size: 1.5rem;
            font-weight: 600;
            color: var(--primary);
        }

        header p {
            color: var(--text-muted);
            font-size: 0.875rem;
            margin-top: 0.25rem;
        }

        .card {
            background: var(--card);
            border-radius: var(--radius);
            box-shadow: var(--shadow);
            padding: 1.25rem;
            margin-bottom: 1rem;
        }

        .card-title {
            font-size: 0.875rem;
            font-weight: 600;
            color: var(--text-muted);
            text-transform: uppercase;
            letter-spacing: 0.05em;
            margin-bottom: 1rem;
        }

        .form-group {
            margin-bottom: 1rem;
        }

        label {
            display: block;
            font-size: 0.875rem;
            font-weight: 500;
            margin-bottom: 0.375rem;
            color: var(--text);
        }

        input, select {
            width: 100%;
            padding: 0.625rem 0.75rem;
            font-size: 1rem;
            border: 1px solid var(--border);
            border-radius: var(--radius);
            background: var(--card);
            color: var(--text);
            transition: border-color 0.15s, box-shadow 0.15s;
        }

        input:focus, select:focus {
            outline: none;
            border-color: var(--primary);
            box-shadow: 0 0 0 3px rgba(37, 99, 235, 0.1);
        }

        .coord-grid {
            display: grid;
            grid-template-columns: 1fr 1fr;
            gap: 0.75rem;
        }

        .mode-row {
            display: grid;
            grid-template-columns: 1fr 1fr 1fr;
            gap: 0.5rem;
            margin-bottom: 1rem;
        }

        .btn {
            display: inline-flex;
            align-items: center;
            justify-content: center;
            width: 100%;
            padding: 0.75rem 1rem;
            font-size: 1rem;
            font-weight: 500;
            color: white;
            background: var(--primary);
            border: none;
            border-radius: var(--radius);
            cursor: pointer;
            transition: background-color 0.15s;
        }

        .btn:hover {
            background: var(--primary-dark);
        }

        .btn-secondary {
            background: var(--card);
            color: var(--text);
            border: 1px solid var(--border);
        }

        .btn-secondary:hover {
            background: var(--bg);
        }

        .btn-secondary.active {
            border-color: var(--primary);
            color: var(--primary);
            font-weight: 600;
        }

        .btn-row {
            display: grid;
            grid-template-columns: 1fr auto auto;
            gap: 0.5rem;
        }

        .error {
            background: #fef2f2;
            border: 1px solid #fecaca;
            color: var(--error);
            padding: 0.75rem 1rem;
            border-radius: var(--radius);
            font-size: 0.875rem;
            margin-bottom: 1rem;
            display: none;
        }

        .error.active {
            display: block;
        }

        .warning {
            background: #fffbeb;
            border: 1px solid #fde68a;
            color: var(--warning);
            padding: 0.75rem 1rem;
            border-radius: var(--radius);
            font-size: 0.875rem;
            margin-bottom: 1rem;
            display: none;
        }

        .warning.active {
            display: block;
        }

        .result-grid {
            display: grid;
            grid-template-columns: 1fr 1fr;
            gap: 0.75rem;
        }

        .result-item {
            padding: 0.625rem 0.75rem;
            background: var(--bg);
            border-radius: var(--radius);
        }

        .result-label {
            font-size: 0.75rem;
            color: var(--text-muted);
            text-transform: uppercase;
            letter-spacing: 0.05em;
        }

        .result-value {
            font-size: 1.125rem;
            font-weight: 600;
            font-variant-numeric: tabular-nums;
        }

        .vertex-list {
            font-size: 0.8125rem;
            color: var(--text-muted);
            font-variant-numeric: tabular-nums;
            margin-top: 0.75rem;
        }

        footer {
            text-align: center;
            color: var(--text-muted);
            font-size: 0.75rem;
            padding: 1rem 0;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Metes</h1>
            <p>Strecken-, Fl&auml;chen- und H&ouml;henprofilmessung</p>
        </header>

        <div class="card">
            <div class="card-title">Messmodus</div>
            <div class="mode-row">
                <button class="btn btn-secondary" data-mode="distance">Strecke</button>
                <button class="btn btn-secondary" data-mode="polygon">Fl&auml;che</button>
                <button class="btn btn-secondary" data-mode="elevation">H&ouml;henprofil</button>
            </div>
        </div>

        <div class="card">
            <div class="card-title">Punkt hinzuf&uuml;gen</div>
            <div class="error" id="error"></div>
            <div class="warning" id="warning"></div>
            <form id="pointForm">
                <div class="form-group coord-grid">
                    <div>
                        <label for="lat">Breitengrad</label>
                        <input type="number" id="lat" step="any" min="-90" max="90" placeholder="47.2692" required>
                    </div>
                    <div>
                        <label for="lng">L&auml;ngengrad</label>
                        <input type="number" id="lng" step="any" min="-180" max="180" placeholder="11.4041" required>
                    </div>
                </div>
                <div class="btn-row">
                    <button type="submit" class="btn">Punkt setzen</button>
                    <button type="button" class="btn btn-secondary" id="computeBtn">Profil</button>
                    <button type="button" class="btn btn-secondary" id="clearBtn">Zur&uuml;cksetzen</button>
                </div>
            </form>
        </div>

        <div class="card">
            <div class="card-title">Ergebnis</div>
            <div class="result-grid" id="results"></div>
            <div class="vertex-list" id="vertices"></div>
        </div>

        <footer>Metes Messdienst</footer>
    </div>

    <script>
        (function() {
            var activeMode = '';
            var form = document.getElementById('pointForm');
            var errorBox = document.getElementById('error');
            var warningBox = document.getElementById('warning');
            var results = document.getElementById('results');
            var vertices = document.getElementById('vertices');

            function showError(message) {
                errorBox.textContent = message;
                errorBox.classList.add('active');
            }

            function clearMessages() {
                errorBox.classList.remove('active');
                warningBox.classList.remove('active');
            }

            function resultItem(label, value) {
                return '<div class="result-item"><div class="result-label">' + label +
                    '</div><div class="result-value">' + value + '</div></div>';
            }

            function renderSnapshot(data) {
                var snap = data.snapshot || {};
                var html = '';
                if (activeMode === 'distance') {
                    html += resultItem('Gesamtstrecke', data.total_formatted || (snap.total_meters || 0).toFixed(1) + ' m');
                    html += resultItem('Punkte', (snap.vertices || []).length);
                } else if (activeMode === 'polygon') {
                    html += resultItem('Fl&auml;che', data.area_formatted || (snap.area_square_meters || 0).toFixed(1) + ' m&sup2;');
                    html += resultItem('Umfang', data.perimeter_formatted || (snap.perimeter_meters || 0).toFixed(1) + ' m');
                } else if (activeMode === 'elevation') {
                    var stats = snap.stats || {};
                    html += resultItem('Max. H&ouml;he', (stats.max_elevation || 0).toFixed(0) + ' m');
                    html += resultItem('Min. H&ouml;he', (stats.min_elevation || 0).toFixed(0) + ' m');
                    html += resultItem('Anstieg', (stats.total_gain || 0).toFixed(0) + ' m');
                    html += resultItem('Abstieg', (stats.total_loss || 0).toFixed(0) + ' m');
                }
                results.innerHTML = html;

                var list = (snap.vertices || snap.endpoints || []).map(function(v) {
                    return v.lat.toFixed(5) + ', ' + v.lng.toFixed(5);
                });
                vertices.textContent = list.length ? list.join('  |  ') : '';
            }

            function apiPath(suffix) {
                var base = activeMode === 'elevation' ? 'profile' : activeMode;
                return '/api/v1/' + base + suffix;
            }

            async function request(url, options) {
                var response = await fetch(url, options);
                var data = await response.json().catch(function() { return {}; });
                if (!response.ok) {
                    throw new Error(data.message || 'Anfrage fehlgeschlagen');
                }
                return data;
            }

            document.querySelectorAll('[data-mode]').forEach(function(btn) {
                btn.addEventListener('click', async function() {
                    clearMessages();
                    try {
                        await request('/api/v1/mode', {
                            method: 'POST',
                            headers: { 'Content-Type': 'application/json' },
                            body: JSON.stringify({ mode: btn.dataset.mode })
                        });
                        activeMode = btn.dataset.mode;
                        document.querySelectorAll('[data-mode]').forEach(function(b) {
                            b.classList.toggle('active', b === btn);
                        });
                        results.innerHTML = '';
                        vertices.textContent = '';
                    } catch (err) {
                        showError(err.message);
                    }
                });
            });

            form.addEventListener('submit', async function(e) {
                e.preventDefault();
                clearMessages();
                if (!activeMode) {
                    showError('Bitte zuerst einen Messmodus wählen.');
                    return;
                }
                try {
                    var data = await request(apiPath('/points'), {
                        method: 'POST',
                        headers: { 'Content-Type': 'application/json' },
                        body: JSON.stringify({
                            lat: parseFloat(document.getElementById('lat').value),
                            lng: parseFloat(document.getElementById('lng').value)
                        })
                    });
                    if (data.accepted === false) {
                        showError('Punkt liegt außerhalb des zulässigen Gebiets.');
                    } else if (data.warning) {
                        warningBox.textContent = data.warning;
                        warningBox.classList.add('active');
                    }
                    renderSnapshot(data);
                } catch (err) {
                    showError(err.message);
                }
            });

            document.getElementById('computeBtn').addEventListener('click', async function() {
                clearMessages();
                if (activeMode !== 'elevation') {
                    showError('Profilberechnung nur im Höhenprofil-Modus.');
                    return;
                }
                try {
                    var data = await request('/api/v1/profile/request', { method: 'POST' });
                    renderSnapshot(data);
                } catch (err) {
                    showError(err.message);
                }
            });

            document.getElementById('clearBtn').addEventListener('click', async function() {
                clearMessages();
                if (!activeMode) {
                    return;
                }
                try {
                    var data = await request(apiPath(''), { method: 'DELETE' });
                    renderSnapshot(data);
                } catch (err) {
                    showError(err.message);
                }
            });
        })();
    </script>
</body>
</html>`

// handleFrontend serves the measurement frontend.
func (s *Server) handleFrontend(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(frontendHTML))
}
