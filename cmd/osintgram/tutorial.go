package main

const banner = `
╔══════════════════════════════════════════════════════════════╗
║                        Instagram OSINT                       ║
║                                                              ║
║                      OsintGram - 1.0.0                       ║
╚══════════════════════════════════════════════════════════════╝
`

const tutorial = `
How to get your Instagram session ID:
1. Open Instagram in a browser and log in
2. Press F12 to open the developer tools
3. Open the "Application" tab
4. In the sidebar, choose "Cookies" → "https://www.instagram.com"
5. Find "sessionid" and copy its value
IMPORTANT: keep your session ID private, it grants full access to your account.
The value can also be set in the ` + sessionEnv + ` environment variable or a .env file.
`
