package services

// pageHTML is the whole document. The table body is server-rendered so the
// page still reads without scripting; the script rebuilds it from the
// embedded payload to add sorting, filtering, column control, and
// import/export.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Audio Library</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 20px;
            background-color: #121212;
            color: #ffffff;
        }
        table {
            border-collapse: collapse;
            width: 100%;
        }
        th, td {
            border: 1px solid #444;
            padding: 8px;
            text-align: left;
        }
        th {
            background-color: #333;
            cursor: pointer;
        }
        tr.filters th {
            cursor: default;
        }
        tr:nth-child(even) {
            background-color: #1e1e1e;
        }
        tr:hover {
            background-color: #333;
        }
        img {
            max-width: 50px;
            max-height: 50px;
        }
        #controls {
            margin-bottom: 12px;
        }
        #controls span {
            display: inline-block;
            margin-right: 10px;
            white-space: nowrap;
        }
        #controls button, #controls input, #controls select,
        tr.filters select, tr.filters input {
            background-color: #333;
            color: #ffffff;
            border: 1px solid #555;
            margin: 1px;
        }
        tr.filters input {
            width: 7em;
        }
        .io-controls {
            margin-top: 6px;
        }
    </style>
</head>
<body>
    <h1>Audio Library</h1>
    <p>{{ len .Rows }} {{ plural "audio file" "audio files" (len .Rows) }}</p>
    <div id="controls"></div>
    <table id="library">
        <thead>
            <tr>
                <th>Cover</th>
                {{- range .Columns }}
                <th>{{ . }}</th>
                {{- end }}
            </tr>
        </thead>
        <tbody>
            {{- range .Rows }}
            <tr>
                <td>{{ if .Cover }}<img src="{{ .Cover }}" alt="Cover">{{ end }}</td>
                {{- range .Cells }}
                <td>{{ . }}</td>
                {{- end }}
            </tr>
            {{- end }}
        </tbody>
    </table>
    <script>
const tableData = {{ .Payload }};
{{ .Script }}
    </script>
</body>
</html>
`

// tableScript runs in the browser, not here. It treats the payload as the
// source of truth: sorting is stable on ties by original order, numeric when
// both cells parse as numbers; filters support contains, equals, greater-
// and less-than; columns can be hidden and reordered; export/import use a
// user-chosen delimiter.
const tableScript = `(function() {
    var columns = tableData.columns;
    var rows = tableData.rows.map(function(row, i) {
        return { cells: row.cells.slice(), cover: row.cover || "", index: i };
    });
    var order = columns.map(function(_, i) { return i; });
    var visible = columns.map(function() { return true; });
    var sortCol = -1;
    var sortAsc = true;
    var filters = {};

    var table = document.getElementById("library");
    var controls = document.getElementById("controls");

    function compareValues(a, b) {
        if (a !== "" && b !== "" && !isNaN(a) && !isNaN(b)) {
            return a - b;
        }
        return a.localeCompare(b);
    }

    function passesFilter(value, f) {
        switch (f.op) {
        case "equals":
            return value.toLowerCase() === f.value.toLowerCase();
        case "gt":
            return parseFloat(value) > parseFloat(f.value);
        case "lt":
            return parseFloat(value) < parseFloat(f.value);
        default:
            return value.toLowerCase().indexOf(f.value.toLowerCase()) !== -1;
        }
    }

    function visibleRows() {
        var out = rows.filter(function(row) {
            for (var col in filters) {
                var f = filters[col];
                if (f.value !== "" && !passesFilter(row.cells[col], f)) {
                    return false;
                }
            }
            return true;
        });
        if (sortCol >= 0) {
            out = out.slice().sort(function(ra, rb) {
                var c = compareValues(ra.cells[sortCol], rb.cells[sortCol]);
                if (c === 0) {
                    return ra.index - rb.index;
                }
                return sortAsc ? c : -c;
            });
        }
        return out;
    }

    function renderHead() {
        var thead = table.tHead;
        thead.innerHTML = "";
        var tr = document.createElement("tr");
        var cover = document.createElement("th");
        cover.textContent = "Cover";
        tr.appendChild(cover);
        order.forEach(function(col) {
            if (!visible[col]) { return; }
            var th = document.createElement("th");
            var marker = "";
            if (sortCol === col) {
                marker = sortAsc ? " ▲" : " ▼";
            }
            th.textContent = columns[col] + marker;
            th.onclick = function() {
                if (sortCol === col) {
                    sortAsc = !sortAsc;
                } else {
                    sortCol = col;
                    sortAsc = true;
                }
                renderHead();
                renderBody();
            };
            tr.appendChild(th);
        });
        thead.appendChild(tr);
        thead.appendChild(filterRow());
    }

    function filterRow() {
        var tr = document.createElement("tr");
        tr.className = "filters";
        tr.appendChild(document.createElement("th"));
        order.forEach(function(col) {
            if (!visible[col]) { return; }
            var th = document.createElement("th");
            var sel = document.createElement("select");
            [["contains", "contains"], ["equals", "="], ["gt", ">"], ["lt", "<"]].forEach(function(op) {
                var opt = document.createElement("option");
                opt.value = op[0];
                opt.textContent = op[1];
                sel.appendChild(opt);
            });
            var input = document.createElement("input");
            input.placeholder = "filter";
            var f = filters[col] || { op: "contains", value: "" };
            filters[col] = f;
            sel.value = f.op;
            input.value = f.value;
            sel.onchange = function() { f.op = sel.value; renderBody(); };
            input.oninput = function() { f.value = input.value; renderBody(); };
            th.appendChild(sel);
            th.appendChild(input);
            tr.appendChild(th);
        });
        return tr;
    }

    function renderBody() {
        var tbody = table.tBodies[0];
        tbody.innerHTML = "";
        visibleRows().forEach(function(row) {
            var tr = document.createElement("tr");
            var td = document.createElement("td");
            if (row.cover) {
                var img = document.createElement("img");
                img.src = row.cover;
                img.alt = "Cover";
                td.appendChild(img);
            }
            tr.appendChild(td);
            order.forEach(function(col) {
                if (!visible[col]) { return; }
                var cell = document.createElement("td");
                cell.textContent = row.cells[col];
                tr.appendChild(cell);
            });
            tbody.appendChild(tr);
        });
    }

    function moveColumn(pos, delta) {
        var target = pos + delta;
        if (target < 0 || target >= order.length) { return; }
        var tmp = order[pos];
        order[pos] = order[target];
        order[target] = tmp;
        buildControls();
        renderHead();
        renderBody();
    }

    function buildControls() {
        controls.innerHTML = "";
        var cols = document.createElement("div");
        order.forEach(function(col, pos) {
            var span = document.createElement("span");
            var box = document.createElement("input");
            box.type = "checkbox";
            box.checked = visible[col];
            box.onchange = function() {
                visible[col] = box.checked;
                renderHead();
                renderBody();
            };
            var left = document.createElement("button");
            left.textContent = "◀";
            left.onclick = function() { moveColumn(pos, -1); };
            var right = document.createElement("button");
            right.textContent = "▶";
            right.onclick = function() { moveColumn(pos, 1); };
            span.appendChild(box);
            span.appendChild(document.createTextNode(columns[col]));
            span.appendChild(left);
            span.appendChild(right);
            cols.appendChild(span);
        });
        controls.appendChild(cols);

        var io = document.createElement("div");
        io.className = "io-controls";
        var delim = document.createElement("input");
        delim.value = ",";
        delim.size = 2;
        delim.title = "delimiter";
        var exp = document.createElement("button");
        exp.textContent = "Export";
        exp.onclick = function() { exportRows(delim.value || ","); };
        var imp = document.createElement("input");
        imp.type = "file";
        imp.onchange = function() {
            if (!imp.files.length) { return; }
            var fr = new FileReader();
            fr.onload = function() { importRows(String(fr.result), delim.value || ","); };
            fr.readAsText(imp.files[0]);
        };
        io.appendChild(document.createTextNode("Delimiter "));
        io.appendChild(delim);
        io.appendChild(exp);
        io.appendChild(imp);
        controls.appendChild(io);
    }

    function exportRows(delimiter) {
        var cols = order.filter(function(col) { return visible[col]; });
        var lines = [cols.map(function(col) { return columns[col]; }).join(delimiter)];
        visibleRows().forEach(function(row) {
            lines.push(cols.map(function(col) { return row.cells[col]; }).join(delimiter));
        });
        var a = document.createElement("a");
        a.href = "data:text/plain;charset=utf-8," + encodeURIComponent(lines.join("\n"));
        a.download = "library-export.txt";
        a.click();
    }

    function importRows(text, delimiter) {
        var lines = text.split(/\r?\n/).filter(function(line) { return line !== ""; });
        if (!lines.length) { return; }
        columns = lines[0].split(delimiter);
        rows = lines.slice(1).map(function(line, i) {
            return { cells: line.split(delimiter), cover: "", index: i };
        });
        order = columns.map(function(_, i) { return i; });
        visible = columns.map(function() { return true; });
        sortCol = -1;
        filters = {};
        buildControls();
        renderHead();
        renderBody();
    }

    buildControls();
    renderHead();
    renderBody();
})();`
