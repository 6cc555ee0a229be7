package server

const formPage = `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>Quick Cuts Text Video</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2em auto; }
textarea { width: 100%; height: 12em; }
label { display: block; margin-top: 1em; }
button { margin-top: 1.5em; padding: 0.6em 2em; }
</style>
</head>
<body>
<h1>Quick Cuts Text Video</h1>
<form method="post" action="/render">
<label>Сценарий (одна строка — один кат)
<textarea name="script">Stop scrolling.
This AI tool is insane.
One prompt.
Done.
Try it today.</textarea>
</label>
<label>Длительность, сек (8–15)
<input type="number" name="duration" min="8" max="15" step="0.5" value="10">
</label>
<label>Размер шрифта (50–140)
<input type="number" name="font_size" min="50" max="140" step="5" value="95">
</label>
<label>Формат
<select name="format">
<option value="vertical">Вертикальный (1080x1920)</option>
<option value="square">Квадратный (1080x1080)</option>
<option value="horizontal">Горизонтальный (1920x1080)</option>
</select>
</label>
<label>FPS
<select name="fps">
<option>24</option>
<option selected>30</option>
<option>60</option>
</select>
</label>
<button type="submit">Сгенерировать видео</button>
</form>
</body>
</html>
`
