package constant

// AsciiArtLogo is the banner shown above the root command help.
const AsciiArtLogo = `
           _ __  _                
  ___ _ __(_) /_(_) __ _ _   _  ___ 
 / __| '__| | __| |/ _' | | | |/ _ \
| (__| |  | | |_| | (_| | |_| |  __/
 \___|_|  |_|\__|_|\__, |\__,_|\___|
                      |_|            `
