package generator

// fallbackTemplate is served when generation fails or returns output
// we cannot use. Placeholders: {{name}}, {{description}}, {{purpose}}.
const fallbackTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{name}}</title>
  <style>
    body {
      font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
      line-height: 1.6;
      margin: 0;
      padding: 0;
      color: #333;
    }
    .container {
      max-width: 1200px;
      margin: 0 auto;
      padding: 0 20px;
    }
    header {
      background: linear-gradient(135deg, #6e8efb, #a777e3);
      color: white;
      text-align: center;
      padding: 100px 0;
    }
    header h1 {
      font-size: 3rem;
      margin-bottom: 20px;
    }
    header .lead {
      font-size: 1.5rem;
      margin-bottom: 30px;
      max-width: 700px;
      margin-left: auto;
      margin-right: auto;
    }
    .cta {
      display: inline-block;
      background-color: #ff6b6b;
      color: white;
      padding: 12px 30px;
      border: none;
      border-radius: 30px;
      font-size: 1.1rem;
      cursor: pointer;
    }
    section {
      padding: 80px 0;
    }
    .features {
      background-color: #f9f9f9;
    }
    .feature-grid {
      display: grid;
      grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
      gap: 30px;
      margin-top: 50px;
    }
    .feature {
      background-color: white;
      padding: 30px;
      border-radius: 10px;
      box-shadow: 0 5px 15px rgba(0, 0, 0, 0.05);
    }
    .signup {
      background-color: #a777e3;
      color: white;
      text-align: center;
    }
    form {
      max-width: 500px;
      margin: 30px auto 0;
      display: flex;
    }
    input[type="email"] {
      flex: 1;
      padding: 15px;
      border: none;
      border-radius: 30px 0 0 30px;
      font-size: 1rem;
    }
    form button {
      background-color: #ff6b6b;
      color: white;
      border: none;
      padding: 0 30px;
      border-radius: 0 30px 30px 0;
      cursor: pointer;
    }
    footer {
      background-color: #333;
      color: white;
      text-align: center;
      padding: 30px 0;
    }
  </style>
</head>
<body>
  <header>
    <div class="container">
      <h1>{{name}}</h1>
      <p class="lead">{{description}}</p>
      <button class="cta">Sign Up Now</button>
    </div>
  </header>

  <section class="features">
    <div class="container">
      <h2>About {{name}}</h2>
      <p>{{description}} - {{purpose}}</p>
    </div>
  </section>

  <section class="signup">
    <div class="container">
      <h2>Get Early Access</h2>
      <p>Be among the first to experience {{name}}.</p>
      <form id="signup-form">
        <input type="email" placeholder="Enter your email" required>
        <button type="submit">Sign Up</button>
      </form>
    </div>
  </section>

  <footer>
    <div class="container">
      <p>&copy; 2025 {{name}}. All rights reserved.</p>
    </div>
  </footer>

  <script>
    document.addEventListener('DOMContentLoaded', function() {
      var form = document.getElementById('signup-form');
      form.addEventListener('submit', function(e) {
        e.preventDefault();
        alert('Thank you for signing up! We will be in touch soon.');
        form.reset();
      });
    });
  </script>
</body>
</html>`
