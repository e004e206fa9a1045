// Package source supplies template lines in input order.
//
// Scanner reads newline-terminated lines from any io.Reader, with the line
// terminator ("\n" or "\r\n") removed. Tailer follows a file and delivers
// lines as they are appended, the way `tail -f` does.
//
// Example usage:
//
//	sc := source.NewScanner(os.Stdin)
//	for sc.Scan() {
//	    fmt.Println(sc.LineNumber(), sc.Text())
//	}
//	if err := sc.Err(); err != nil {
//	    return err
//	}
package source
