package mail

// JXA bodies for each bridge operation. Every body runs inside the
// executor's guarded harness and receives its parameters as the single
// `args` object; nothing is ever interpolated into these sources.

// jsFindMailbox resolves a mailbox by name, optionally qualified by account.
// With no account it returns the first mailbox of that name across accounts.
const jsFindMailbox = `
function findMailbox(Mail, accountName, mailboxName) {
	if (accountName) {
		var account = Mail.accounts.byName(accountName);
		if (!account.exists()) {
			throw new Error("Account not found: " + accountName);
		}
		var box = account.mailboxes.byName(mailboxName);
		if (!box.exists()) {
			throw new Error("Mailbox not found: " + mailboxName + " in account " + accountName);
		}
		return box;
	}
	var accounts = Mail.accounts();
	for (var i = 0; i < accounts.length; i++) {
		var candidate = accounts[i].mailboxes.byName(mailboxName);
		if (candidate.exists()) {
			return candidate;
		}
	}
	throw new Error("Mailbox not found: " + mailboxName);
}
`

// jsMessageRecord serializes one message. Content handling follows args
// conventions: contentMode is "none", "preview", or "full"; previewLength
// bounds the preview. Recipients are only materialized outside "none" mode
// because fetching them is a separate Apple Event per message.
const jsMessageRecord = `
function messageRecord(m, boxName, acctName, contentMode, previewLength) {
	var record = {
		id: String(m.id()),
		message_id: m.messageId(),
		subject: m.subject() || "",
		sender: m.sender() || "",
		date_sent: m.dateSent() ? m.dateSent().toISOString() : "",
		date_received: m.dateReceived() ? m.dateReceived().toISOString() : "",
		is_read: m.readStatus(),
		is_flagged: m.flaggedStatus(),
		mailbox: boxName,
		account_name: acctName
	};
	if (contentMode !== "none") {
		try {
			record.recipients = m.toRecipients().map(function (r) { return r.address(); });
		} catch (e) {
			record.recipients = [];
		}
		try {
			var content = m.content() || "";
			if (contentMode === "preview" && content.length > previewLength) {
				content = content.substring(0, previewLength);
			}
			record.content = content;
		} catch (e) {
			record.content = "";
		}
	}
	return record;
}
`

// listAccountsBody enumerates all Mail.app accounts.
const listAccountsBody = `
var Mail = Application("Mail");
var accounts = Mail.accounts();
var out = [];
for (var i = 0; i < accounts.length; i++) {
	var a = accounts[i];
	var addresses = [];
	try {
		addresses = a.emailAddresses() || [];
	} catch (e) {}
	out.push({
		name: a.name(),
		email_addresses: addresses,
		enabled: a.enabled(),
		id: String(a.id())
	});
}
return out;
`

// listMailboxesBody produces the flat mailbox listing for one account,
// with message counts and (possibly estimated) unread counts. Parent is the
// containing mailbox name, or null for top-level mailboxes whose container
// is the account itself.
const listMailboxesBody = `
var Mail = Application("Mail");
var account = Mail.accounts.byName(args.account);
if (!account.exists()) {
	throw new Error("Account not found: " + args.account);
}
var mailboxes = account.mailboxes();
var out = [];
for (var i = 0; i < mailboxes.length; i++) {
	var mb = mailboxes[i];
	var name = mb.name();
	var parent = null;
	try {
		var containerName = mb.container().name();
		if (containerName && containerName !== args.account) {
			parent = containerName;
		}
	} catch (e) {}
	var total = 0;
	try {
		total = mb.messages.length;
	} catch (e) {}
	var unread = 0;
	var estimated = false;
	if (total > args.sampleThreshold) {
		var sample = Math.min(args.sampleSize, total);
		var sampleUnread = 0;
		for (var j = 0; j < sample; j++) {
			if (!mb.messages[j].readStatus()) {
				sampleUnread++;
			}
		}
		unread = Math.round(sampleUnread * total / sample);
		estimated = true;
	} else {
		try {
			unread = mb.unreadCount();
		} catch (e) {}
	}
	out.push({
		name: name,
		parent: parent,
		message_count: total,
		unread_count: unread,
		unread_estimated: estimated
	});
}
return out;
`

// listMailboxNamesBody is the cheap variant used by search and bulk scope
// enumeration: names and parents only, no counts.
const listMailboxNamesBody = `
var Mail = Application("Mail");
var account = Mail.accounts.byName(args.account);
if (!account.exists()) {
	throw new Error("Account not found: " + args.account);
}
var mailboxes = account.mailboxes();
var out = [];
for (var i = 0; i < mailboxes.length; i++) {
	var mb = mailboxes[i];
	var parent = null;
	try {
		var containerName = mb.container().name();
		if (containerName && containerName !== args.account) {
			parent = containerName;
		}
	} catch (e) {}
	out.push({ name: mb.name(), parent: parent });
}
return out;
`

// listMessagesBody scans one mailbox newest-first, up to args.scanLimit
// messages, returning at most args.limit records. Mail.app orders a
// mailbox's messages collection newest-first, so index 0 is the most recent.
const listMessagesBody = jsFindMailbox + jsMessageRecord + `
var Mail = Application("Mail");
var box = findMailbox(Mail, args.account, args.mailbox);
var acctName = args.account;
if (!acctName) {
	try {
		acctName = box.container().name();
	} catch (e) {
		acctName = "";
	}
}
var msgs = box.messages;
var total = msgs.length;
var scan = args.scanLimit > 0 ? Math.min(args.scanLimit, total) : total;
var out = [];
for (var i = 0; i < scan && out.length < args.limit; i++) {
	var m = msgs[i];
	if (args.unreadOnly && m.readStatus()) {
		continue;
	}
	out.push(messageRecord(m, args.mailbox, acctName, args.contentMode, args.previewLength));
}
return out;
`

// resolveMailboxBody verifies a destination mailbox exists before any bulk
// scan starts, and reports the owning account when the caller left it open.
const resolveMailboxBody = jsFindMailbox + `
var Mail = Application("Mail");
var box = findMailbox(Mail, args.account, args.mailbox);
var acctName = args.account;
if (!acctName) {
	try {
		acctName = box.container().name();
	} catch (e) {
		acctName = "";
	}
}
return { account: acctName, mailbox: box.name() };
`

// applyActionBody scans one mailbox newest-first for messages whose
// Message-ID is in args.messageIds, applies the action, and reports which
// ids were applied and which were found but failed. Deleting shifts later
// indices down by one, hence the index rewind.
const applyActionBody = jsFindMailbox + `
var Mail = Application("Mail");
var box = findMailbox(Mail, args.account, args.mailbox);
var target = null;
if (args.action === "move") {
	target = findMailbox(Mail, args.targetAccount, args.targetMailbox);
}
var wanted = {};
for (var i = 0; i < args.messageIds.length; i++) {
	wanted[args.messageIds[i]] = true;
}
var remaining = args.messageIds.length;
var applied = [];
var failed = [];
var msgs = box.messages;
var total = msgs.length;
var scan = args.scanLimit > 0 ? Math.min(args.scanLimit, total) : total;
for (var i = 0; i < scan && remaining > 0; i++) {
	var m = msgs[i];
	var mid;
	try {
		mid = m.messageId();
	} catch (e) {
		continue;
	}
	if (!wanted[mid]) {
		continue;
	}
	delete wanted[mid];
	remaining--;
	try {
		if (args.action === "markRead") {
			m.readStatus = true;
			applied.push(mid);
		} else if (args.action === "delete") {
			Mail.delete(m);
			applied.push(mid);
			i--;
			scan--;
		} else if (args.action === "move") {
			Mail.move(m, { to: target });
			applied.push(mid);
			i--;
			scan--;
		} else {
			throw new Error("Unknown action: " + args.action);
		}
	} catch (e) {
		failed.push({ id: mid, message: String(e && e.message ? e.message : e) });
	}
}
return { applied: applied, failed: failed };
`

// sendMailBody composes and sends an outgoing message through Mail.app so
// the sent copy lands in the user's own account.
const sendMailBody = `
var Mail = Application("Mail");
var message = Mail.OutgoingMessage({
	subject: args.subject,
	content: args.body,
	visible: false
});
Mail.outgoingMessages.push(message);
if (args.sender) {
	message.sender = args.sender;
}
for (var i = 0; i < args.to.length; i++) {
	message.toRecipients.push(Mail.Recipient({ address: args.to[i] }));
}
for (var i = 0; i < args.cc.length; i++) {
	message.ccRecipients.push(Mail.Recipient({ address: args.cc[i] }));
}
for (var i = 0; i < args.bcc.length; i++) {
	message.bccRecipients.push(Mail.Recipient({ address: args.bcc[i] }));
}
message.send();
return "Email sent to " + args.to.join(", ");
`
